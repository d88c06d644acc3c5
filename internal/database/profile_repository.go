// internal/database/profile_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileDocument is the mirrored user record, keyed by the account id.
type ProfileDocument struct {
	UID          string    `bson:"_id"`
	Email        string    `bson:"email"`
	Nickname     string    `bson:"nickname"`
	ReferralCode string    `bson:"referralcode"`
	CreatedAt    time.Time `bson:"createdat"`
}

func profileToDocument(profile *models.Profile) *ProfileDocument {
	return &ProfileDocument{
		UID:          profile.UID.String(),
		Email:        profile.Email,
		Nickname:     profile.Nickname,
		ReferralCode: profile.ReferralCode,
		CreatedAt:    profile.CreatedAt,
	}
}

func documentToProfile(doc *ProfileDocument) (*models.Profile, error) {
	uid, err := uuid.Parse(doc.UID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile UID: %v", err)
	}

	return &models.Profile{
		UID:          uid,
		Email:        doc.Email,
		Nickname:     doc.Nickname,
		ReferralCode: doc.ReferralCode,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// SaveProfile creates or updates the mirrored profile document.
func (m *MongoDB) SaveProfile(ctx context.Context, profile *models.Profile) error {
	doc := profileToDocument(profile)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": profile.UID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Profiles.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetProfile retrieves the profile document for an account id.
func (m *MongoDB) GetProfile(ctx context.Context, uid uuid.UUID) (*models.Profile, error) {
	var doc ProfileDocument

	err := m.Profiles.FindOne(ctx, bson.M{"_id": uid.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "Profile not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToProfile(&doc)
}

// IsEmailTaken reports whether any profile document carries the email.
func (m *MongoDB) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	count, err := m.Profiles.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsNicknameTaken reports whether any profile document carries the nickname.
func (m *MongoDB) IsNicknameTaken(ctx context.Context, nickname string) (bool, error) {
	count, err := m.Profiles.CountDocuments(ctx, bson.M{"nickname": nickname})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteProfile removes the mirrored profile document.
func (m *MongoDB) DeleteProfile(ctx context.Context, uid uuid.UUID) error {
	_, err := m.Profiles.DeleteOne(ctx, bson.M{"_id": uid.String()})
	return err
}
