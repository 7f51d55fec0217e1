package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

const roleCollection = "roles"

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

// Role identifiers come from configuration, so _id is the configured string
// rather than an ObjectID.
type mongoRole struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
}

func (mr *mongoRole) toDomain() *domain.Role {
	return &domain.Role{ID: mr.ID, Title: mr.Title, Description: mr.Description}
}

// Seed upserts the configured roles. Existing records are left untouched so
// that a manually edited description survives restarts.
func (r *MongoRoleRepository) Seed(ctx context.Context, roles []domain.Role) error {
	for _, role := range roles {
		update := bson.M{"$setOnInsert": bson.M{
			"title":       role.Title,
			"description": role.Description,
		}}
		_, err := r.coll.UpdateByID(ctx, role.ID, update, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role.Title, err)
		}
	}
	return nil
}

func (r *MongoRoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	for cur.Next(ctx) {
		var mr mongoRole
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

func (r *MongoRoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := mongoRole{ID: role.ID, Title: role.Title, Description: role.Description}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create role: id %s already exists", role.ID)
		}
		return nil, fmt.Errorf("create role: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoRoleRepository) Update(ctx context.Context, id string, patch ports.RolePatch) (*domain.Role, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	if len(set) > 0 {
		res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrRoleNotFound
		}
	}

	return r.FindByID(ctx, id)
}

func (r *MongoRoleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
