package gcp

import (
	"cloud.google.com/go/firestore"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

type tx struct {
	writer
	t *firestore.Transaction
}

var _ store.Tx = (*tx)(nil)

func newTx(f *Firestore, t *firestore.Transaction) *tx {
	return &tx{writer: writer{f: f, sink: txSink{t: t}}, t: t}
}

func (t *tx) GetUser(userID string) (*models.User, error) {
	doc, err := t.t.Get(t.f.userRef(userID))
	if err != nil {
		return nil, translate(err, errs.ErrUserNotFound)
	}
	return decodeUser(doc)
}

func (t *tx) GetGroup(groupID string) (*models.Group, error) {
	doc, err := t.t.Get(t.f.groupRef(groupID))
	if err != nil {
		return nil, translate(err, errs.ErrGroupNotFound)
	}
	return decodeGroup(doc)
}

func (t *tx) GetGroups(groupIDs []string) (map[string]*models.Group, error) {
	out := make(map[string]*models.Group, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(groupIDs))
	for _, id := range groupIDs {
		refs = append(refs, t.f.groupRef(id))
	}
	docs, err := t.t.GetAll(refs)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		g, err := decodeGroup(doc)
		if err != nil {
			return nil, err
		}
		out[g.ID] = g
	}
	return out, nil
}

func (t *tx) NewNoteID(userID string) string {
	return t.f.notes(userID).NewDoc().ID
}

func (t *tx) NewMessageID(groupID string) string {
	return t.f.messages(groupID).NewDoc().ID
}
