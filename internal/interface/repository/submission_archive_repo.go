package repository

import (
	"context"
	"fmt"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubmissionArchiveRepository implements SubmissionArchiveRepository
type MongoSubmissionArchiveRepository struct {
	collection *mongo.Collection
}

type archivedSubmission struct {
	SubmissionID string             `bson:"submissionId"`
	Submission   *entity.Submission `bson:"submission"`
	ArchivedAt   time.Time          `bson:"archivedAt"`
}

// NewMongoSubmissionArchiveRepository creates a new submission archive repository
func NewMongoSubmissionArchiveRepository(db *mongo.Database) repository.SubmissionArchiveRepository {
	collection := db.Collection("submissions")

	// Create unique index on submissionId
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"submissionId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoSubmissionArchiveRepository{
		collection: collection,
	}
}

// Save archives a raw submission. A re-submitted id overwrites the
// previous archive entry.
func (r *MongoSubmissionArchiveRepository) Save(ctx context.Context, submission *entity.Submission) error {
	doc := archivedSubmission{
		SubmissionID: submission.ID,
		Submission:   submission,
		ArchivedAt:   time.Now(),
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"submissionId": submission.ID}

	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("archiving submission %s: %w", submission.ID, err)
	}
	return nil
}

// FindByID returns an archived submission by its id
func (r *MongoSubmissionArchiveRepository) FindByID(ctx context.Context, id string) (*entity.Submission, error) {
	var doc archivedSubmission
	err := r.collection.FindOne(ctx, bson.M{"submissionId": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc.Submission, nil
}
