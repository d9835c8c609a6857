package gcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
	"scriptureCircle/utils"
)

const (
	userCollection       = "users"
	groupCollection      = "groups"
	messageCollection    = "messages"
	noteCollection       = "notes"
	groupStateCollection = "groupStates"

	transactionAttempts = 5
	// deletePageSize keeps every recursive-delete page under the provider batch ceiling.
	deletePageSize = 450
)

func CreateFirestore(ctx context.Context, projectID string) *firestore.Client {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	// Close client when done with
	// defer client.Close()
	return client
}

// Firestore implements store.Store on top of a Firestore client.
type Firestore struct {
	client *firestore.Client
}

var _ store.Store = (*Firestore)(nil)

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) users() *firestore.CollectionRef  { return f.client.Collection(userCollection) }
func (f *Firestore) groups() *firestore.CollectionRef { return f.client.Collection(groupCollection) }

func (f *Firestore) userRef(id string) *firestore.DocumentRef  { return f.users().Doc(id) }
func (f *Firestore) groupRef(id string) *firestore.DocumentRef { return f.groups().Doc(id) }

func (f *Firestore) messages(groupID string) *firestore.CollectionRef {
	return f.groupRef(groupID).Collection(messageCollection)
}

func (f *Firestore) notes(userID string) *firestore.CollectionRef {
	return f.userRef(userID).Collection(noteCollection)
}

func (f *Firestore) stateRef(userID, groupID string) *firestore.DocumentRef {
	return f.userRef(userID).Collection(groupStateCollection).Doc(groupID)
}

// translate maps provider status codes onto the domain error taxonomy.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	// Provider messages carry resource paths; they go to the log only.
	switch status.Code(err) {
	case codes.NotFound:
		slog.With("error", err.Error()).Debug("firestore document not found")
		return notFound
	case codes.Aborted:
		slog.With("error", err.Error()).Warn("firestore transaction aborted")
		return errs.ErrConflict
	}
	return err
}

func (f *Firestore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	err := f.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, newTx(f, t))
	}, firestore.MaxAttempts(transactionAttempts))
	if err == nil {
		return nil
	}
	// Domain errors returned by fn come back unchanged.
	return translate(err, errs.ErrNotFound)
}

func decodeUser(doc *firestore.DocumentSnapshot) (*models.User, error) {
	u, err := utils.DataTo[models.User](doc)
	if err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return u, nil
}

func decodeGroup(doc *firestore.DocumentSnapshot) (*models.Group, error) {
	g, err := utils.DataTo[models.Group](doc)
	if err != nil {
		return nil, err
	}
	g.ID = doc.Ref.ID
	return g, nil
}

func (f *Firestore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	doc, err := f.userRef(userID).Get(ctx)
	if err != nil {
		return nil, translate(err, errs.ErrUserNotFound)
	}
	return decodeUser(doc)
}

func (f *Firestore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	doc, err := f.groupRef(groupID).Get(ctx)
	if err != nil {
		return nil, translate(err, errs.ErrGroupNotFound)
	}
	return decodeGroup(doc)
}

func (f *Firestore) ListGroups(ctx context.Context) ([]models.Group, error) {
	iter := f.groups().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()
	results := make([]models.Group, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		g, err := decodeGroup(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, *g)
	}
	return results, nil
}

func (f *Firestore) RecentMessages(ctx context.Context, groupID string, since time.Time, limit int) ([]models.Message, error) {
	q := f.messages(groupID).OrderBy("createdAt", firestore.Desc)
	if !since.IsZero() {
		q = q.Where("createdAt", ">=", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return utils.GetAllToStructs[models.Message](docs)
}

func (f *Firestore) ListNotes(ctx context.Context, userID string, limit int) ([]models.Note, error) {
	q := f.notes(userID).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return utils.GetAllToStructs[models.Note](docs)
}

func (f *Firestore) NewBatch(ctx context.Context, limit int) store.Batch {
	if limit <= 0 || limit > store.MaxBatchSize {
		limit = store.DefaultBatchSize
	}
	return newBatch(ctx, f, limit)
}

// DeleteGroupTree deletes every subcollection under the group, page by page,
// and then the group document.
func (f *Firestore) DeleteGroupTree(ctx context.Context, groupID string) error {
	ref := f.groupRef(groupID)
	if err := f.deleteSubcollections(ctx, ref); err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	return nil
}

func (f *Firestore) deleteSubcollections(ctx context.Context, ref *firestore.DocumentRef) error {
	iter := ref.Collections(ctx)
	for {
		col, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list subcollections of %s: %w", ref.Path, err)
		}
		if err := f.deleteCollection(ctx, col); err != nil {
			return err
		}
	}
}

func (f *Firestore) deleteCollection(ctx context.Context, col *firestore.CollectionRef) error {
	for {
		docs, err := col.Limit(deletePageSize).Documents(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("failed to page %s: %w", col.Path, err)
		}
		if len(docs) == 0 {
			return nil
		}
		bw := f.client.BulkWriter(ctx)
		jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
		for _, doc := range docs {
			if err := f.deleteSubcollections(ctx, doc.Ref); err != nil {
				bw.End()
				return err
			}
			job, err := bw.Delete(doc.Ref)
			if err != nil {
				bw.End()
				return err
			}
			jobs = append(jobs, job)
		}
		bw.End()
		for _, job := range jobs {
			if _, err := job.Results(); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", col.Path, err)
			}
		}
	}
}

func (f *Firestore) AddToken(ctx context.Context, userID, token string) error {
	_, err := f.userRef(userID).Update(ctx, []firestore.Update{
		{Path: "fcmTokens", Value: firestore.ArrayUnion(token)},
	})
	return translate(err, errs.ErrUserNotFound)
}

func (f *Firestore) RemoveTokens(ctx context.Context, userID string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	_, err := f.userRef(userID).Update(ctx, []firestore.Update{
		{Path: "fcmTokens", Value: firestore.ArrayRemove(anySlice(tokens)...)},
	})
	return translate(err, errs.ErrUserNotFound)
}

func (f *Firestore) UpdateProfile(ctx context.Context, userID string, update store.ProfileUpdate) error {
	ups := profileUpdates(update)
	if len(ups) == 0 {
		return nil
	}
	_, err := f.userRef(userID).Update(ctx, ups)
	return translate(err, errs.ErrUserNotFound)
}
