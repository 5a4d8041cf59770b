package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shelfglow/inventory-backend/internal/models"
	"github.com/shelfglow/inventory-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	FindByCodes(ctx context.Context, codes []string) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, page, size int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
	BulkUpsert(ctx context.Context, ops []models.UpsertOp) (*models.BulkResult, error)
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepo(collection *mongo.Collection) ProductRepository {
	return &productRepository{collection: collection}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(dbCtx, product)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		return nil, fmt.Errorf("querying product %s: %w", id.Hex(), err)
	}

	return product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *productRepository) FindByCodes(ctx context.Context, codes []string) ([]models.Product, error) {
	if len(codes) == 0 {
		return []models.Product{}, nil
	}

	return r.find(ctx, bson.M{"code": bson.M{"$in": codes}})
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *productRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(dbCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	products := []models.Product{}

	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	return products, nil
}

func (r *productRepository) List(ctx context.Context, page, size int) ([]models.Product, int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"_id": 1}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}

	products := []models.Product{}

	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, 0, fmt.Errorf("decoding products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("updating product %s: %w", product.ID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id.Hex(), err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(dbCtx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("deleting products: %w", err)
	}

	return result.DeletedCount, nil
}

// BulkUpsert executes the import plan as one unordered bulk write: each op
// matches on the business key, applies the normalized fields, and stamps
// createdAt only on insert. Individual write errors never abort sibling
// upserts; they are folded into the result instead.
func (r *productRepository) BulkUpsert(ctx context.Context, ops []models.UpsertOp) (*models.BulkResult, error) {
	if len(ops) == 0 {
		return &models.BulkResult{}, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(ops))

	for _, op := range ops {
		set := bson.M{"updatedAt": now}
		for field, value := range op.Set {
			set[field] = value
		}

		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"code": op.Code}).
			SetUpdate(bson.M{
				"$set":         set,
				"$setOnInsert": bson.M{"createdAt": now},
			}).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(dbCtx, writes, options.BulkWrite().SetOrdered(false))

	bulk := &models.BulkResult{}
	if result != nil {
		bulk.Matched = result.MatchedCount
		bulk.Inserted = result.UpsertedCount
	}

	if err != nil {
		var writeErrs mongo.BulkWriteException
		if errors.As(err, &writeErrs) {
			for _, we := range writeErrs.WriteErrors {
				bulk.Errors = append(bulk.Errors, fmt.Sprintf("op %d: %s", we.Index, we.Message))
			}

			return bulk, nil
		}

		return nil, fmt.Errorf("bulk upsert: %w", err)
	}

	return bulk, nil
}
