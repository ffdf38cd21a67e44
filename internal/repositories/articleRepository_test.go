package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"trendwise/internal/database"
	"trendwise/internal/models"
)

func startMongo(t *testing.T) database.Service {
	t.Helper()

	container, err := mongodb.Run(context.Background(), "mongo:latest")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("could not teardown mongodb container: %v", err)
		}
	})

	uri, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatalf("could not get connection string: %v", err)
	}
	os.Setenv("MONGO_URI", uri)

	db := database.New()
	t.Cleanup(func() { db.Close() })
	return db
}

func TestArticleRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	db := startMongo(t)
	articleRepo := NewArticleRepository(db)

	t.Run("Create and FindOne by trending topic", func(t *testing.T) {
		article := &models.Article{
			Title:         "Quantum Computing Breakthrough Explained",
			Slug:          "quantum-computing-breakthrough-explained",
			TrendingTopic: "Quantum Computing",
			Source:        models.ArticleSourceAI,
			Status:        models.ArticleStatusPublished,
			PublishedAt:   time.Now(),
		}

		created, err := articleRepo.Create(context.Background(), article)
		assert.NoError(t, err)
		assert.False(t, created.ID.IsZero())

		found, err := articleRepo.FindOne(context.Background(), bson.M{"trending_topic": "Quantum Computing"})
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "quantum-computing-breakthrough-explained", found.Slug)
	})

	t.Run("FindOne misses return ErrNoDocuments", func(t *testing.T) {
		_, err := articleRepo.FindOne(context.Background(), bson.M{"trending_topic": "No Such Topic"})
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	t.Run("Find sorts newest first and paginates", func(t *testing.T) {
		base := time.Now()
		for i := 0; i < 3; i++ {
			_, err := articleRepo.Create(context.Background(), &models.Article{
				Title:         "Paging Article",
				Slug:          "paging-article",
				TrendingTopic: "Paging",
				Status:        models.ArticleStatusPublished,
				PublishedAt:   base.Add(time.Duration(i) * time.Minute),
			})
			assert.NoError(t, err)
		}

		page1, err := articleRepo.Find(context.Background(), bson.M{"trending_topic": "Paging"}, 2, 1)
		assert.NoError(t, err)
		assert.Len(t, page1, 2)
		assert.True(t, page1[0].PublishedAt.After(page1[1].PublishedAt))

		page2, err := articleRepo.Find(context.Background(), bson.M{"trending_topic": "Paging"}, 2, 2)
		assert.NoError(t, err)
		assert.Len(t, page2, 1)

		total, err := articleRepo.Count(context.Background(), bson.M{"trending_topic": "Paging"})
		assert.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})

	t.Run("UpdateOne increments view count", func(t *testing.T) {
		created, err := articleRepo.Create(context.Background(), &models.Article{
			Title:         "View Counter",
			Slug:          "view-counter",
			TrendingTopic: "Views",
			Status:        models.ArticleStatusPublished,
			PublishedAt:   time.Now(),
		})
		assert.NoError(t, err)

		_, err = articleRepo.UpdateOne(context.Background(), bson.M{"_id": created.ID}, bson.M{"$inc": bson.M{"view_count": 1}})
		assert.NoError(t, err)

		found, err := articleRepo.FindOne(context.Background(), bson.M{"_id": created.ID})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, found.ViewCount)

		result, err := articleRepo.DeleteOne(context.Background(), bson.M{"_id": created.ID})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, result.DeletedCount)
	})
}
