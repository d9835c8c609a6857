package utils

import (
	"fmt"

	"cloud.google.com/go/firestore"
)

func ToPointer[T any](value T) *T {
	return &value
}

// DataTo decodes a single snapshot into a new T.
func DataTo[T any](doc *firestore.DocumentSnapshot) (*T, error) {
	var item T
	if err := doc.DataTo(&item); err != nil {
		return nil, fmt.Errorf("failed to convert doc %s: %w", doc.Ref.ID, err)
	}
	return &item, nil
}

// GetAllToStructs decodes snapshots in order, skipping documents that do not exist.
func GetAllToStructs[T any](docs []*firestore.DocumentSnapshot) ([]T, error) {
	result := make([]T, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		item, err := DataTo[T](doc)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}
