// internal/database/category_repository.go
package database

import (
	"context"
	"fmt"
	"log"

	"driftwood/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryDocument represents the MongoDB schema for a category.
type CategoryDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func categoryToDocument(category *models.Category) *CategoryDocument {
	return &CategoryDocument{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}

func documentToCategory(doc *CategoryDocument) (*models.Category, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}

	return &models.Category{
		ID:   id,
		Name: doc.Name,
	}, nil
}

// SaveCategory appends a category document. No uniqueness enforcement
// here: callers pre-check the name, and two racing callers can still
// create duplicate documents.
func (m *MongoDB) SaveCategory(ctx context.Context, category *models.Category) error {
	doc := categoryToDocument(category)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": category.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Categories.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetCategories returns all category documents, unordered.
func (m *MongoDB) GetCategories(ctx context.Context) ([]*models.Category, error) {
	cursor, err := m.Categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	for cursor.Next(ctx) {
		var doc CategoryDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding category document: %v", err)
			continue
		}

		category, err := documentToCategory(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		categories = append(categories, category)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return categories, nil
}

// DeleteCategoriesByName removes every category document carrying the
// name. Deleting by name rather than id covers accidental duplicates.
func (m *MongoDB) DeleteCategoriesByName(ctx context.Context, name string) (int64, error) {
	result, err := m.Categories.DeleteMany(ctx, bson.M{"name": name})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
