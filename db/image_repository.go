package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"being/db/models"
)

// StoreImage writes the image bytes to GridFS, persists a metadata record,
// and returns the URL the image can be fetched from
func StoreImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	filename := fmt.Sprintf("image-%d", time.Now().UnixMilli())
	storageID, err := GetBucket().UploadFromStream(filename, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc := models.GeneratedImageDocument{
		Prompt:    prompt,
		StorageID: storageID,
		MIMEType:  mimeType,
		CreatedAt: time.Now(),
	}

	result, err := GetCollection(imagesCollection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	return ImageURL(result.InsertedID.(primitive.ObjectID)), nil
}

// ImageURL returns the serving path for an image metadata record
func ImageURL(id primitive.ObjectID) string {
	return "/image?id=" + id.Hex()
}

// GetImage loads an image's metadata and writes its bytes to w
func GetImage(ctx context.Context, id primitive.ObjectID, w io.Writer) (*models.GeneratedImageDocument, error) {
	var doc models.GeneratedImageDocument
	err := GetCollection(imagesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := GetBucket().DownloadToStream(doc.StorageID, w); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListImages returns image metadata records, newest first
func ListImages(ctx context.Context, limit int) ([]models.GeneratedImageDocument, error) {
	if limit <= 0 {
		limit = 20
	}

	cursor, err := GetCollection(imagesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var images []models.GeneratedImageDocument
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteAllImages removes every image blob and metadata record. Used by reset.
func DeleteAllImages(ctx context.Context) (int64, error) {
	collection := GetCollection(imagesCollection)

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var images []models.GeneratedImageDocument
	if err := cursor.All(ctx, &images); err != nil {
		return 0, err
	}

	for _, img := range images {
		// Blob may already be gone; the metadata record still gets removed
		if err := GetBucket().Delete(img.StorageID); err != nil {
			log.Printf("[reset] Failed to delete image blob %s: %v", img.StorageID.Hex(), err)
		}
	}

	result, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ImageStore adapts the image repository to the executor's blob interface
type ImageStore struct{}

func (ImageStore) Store(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	return StoreImage(ctx, prompt, data, mimeType)
}
