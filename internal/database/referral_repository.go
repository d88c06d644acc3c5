// internal/database/referral_repository.go
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Referral codes are documents whose _id IS the code string. Existence
// of the document is the sole validity signal: no usage count, no
// expiry, no per-user binding.

// ReferralCodeExists reports whether a document keyed by the code exists.
func (m *MongoDB) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}

	count, err := m.ReferralCodes.CountDocuments(ctx, bson.M{"_id": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveReferralCode seeds a code document. Used by operators and tests;
// sign-up itself never writes codes.
func (m *MongoDB) SaveReferralCode(ctx context.Context, code string) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": code}
	update := bson.M{"$set": bson.M{"createdat": time.Now()}}

	_, err := m.ReferralCodes.UpdateOne(ctx, filter, update, opts)
	return err
}
