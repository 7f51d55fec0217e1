package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

const (
	requestCollection    = "friend_requests"
	friendshipCollection = "friendships"
)

// MongoFriendRepository persists friend requests and friendship edges.
// An edge is stored exactly once with the user pair in canonical order and
// queried bidirectionally, so friend lists need no deduplication.
type MongoFriendRepository struct {
	requests    *mongo.Collection
	friendships *mongo.Collection
	client      *mongo.Client
}

func NewFriendRepository(db *mongo.Database) *MongoFriendRepository {
	return &MongoFriendRepository{
		requests:    db.Collection(requestCollection),
		friendships: db.Collection(friendshipCollection),
		client:      db.Client(),
	}
}

type mongoRequest struct {
	SenderID   string `bson:"sender_id"`
	ReceiverID string `bson:"receiver_id"`
	Status     string `bson:"status"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (mr *mongoRequest) toDomain() *domain.FriendRequest {
	return &domain.FriendRequest{
		SenderID:   mr.SenderID,
		ReceiverID: mr.ReceiverID,
		Status:     domain.RequestStatus(mr.Status),
		CreatedAt:  unixToTime(mr.CreatedAt),
		UpdatedAt:  unixToTime(mr.UpdatedAt),
	}
}

type mongoFriendship struct {
	UserLo    string `bson:"user_lo"`
	UserHi    string `bson:"user_hi"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoFriendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	doc := mongoRequest{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Status:     string(req.Status),
		CreatedAt:  req.CreatedAt.Unix(),
		UpdatedAt:  req.UpdatedAt.Unix(),
	}

	if _, err := r.requests.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRequestExists
		}
		return fmt.Errorf("insert friend request: %w", err)
	}
	return nil
}

func (r *MongoFriendRepository) FindRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	var mr mongoRequest
	filter := bson.M{"sender_id": senderID, "receiver_id": receiverID}
	if err := r.requests.FindOne(ctx, filter).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find friend request: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoFriendRepository) ListIncoming(ctx context.Context, receiverID string) ([]*domain.FriendRequest, error) {
	filter := bson.M{"receiver_id": receiverID, "status": string(domain.RequestPending)}
	cur, err := r.requests.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find incoming requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.FriendRequest
	for cur.Next(ctx) {
		var mr mongoRequest
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode friend request: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate friend requests: %w", err)
	}
	return out, nil
}

// Accept transitions the pending request to accepted and inserts the
// friendship edge inside one multi-document transaction. The status filter
// guards the transition under concurrency: a request resolved by a racing
// call matches zero documents and the whole transaction is abandoned.
func (r *MongoFriendRepository) Accept(ctx context.Context, senderID, receiverID string) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.transition(sc, senderID, receiverID, domain.RequestAccepted, now); err != nil {
			return nil, err
		}

		edge := domain.NewFriendship(senderID, receiverID, now)
		doc := mongoFriendship{UserLo: edge.UserLo, UserHi: edge.UserHi, CreatedAt: now.Unix()}
		if _, err := r.friendships.InsertOne(sc, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyFriends
			}
			return nil, fmt.Errorf("insert friendship: %w", err)
		}
		return nil, nil
	})
	return err
}

// Reject transitions the pending request to rejected. No edge is created.
func (r *MongoFriendRepository) Reject(ctx context.Context, senderID, receiverID string) error {
	return r.transition(ctx, senderID, receiverID, domain.RequestRejected, time.Now().UTC())
}

func (r *MongoFriendRepository) transition(ctx context.Context, senderID, receiverID string, next domain.RequestStatus, at time.Time) error {
	filter := bson.M{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"status":      string(domain.RequestPending),
	}
	update := bson.M{"$set": bson.M{"status": string(next), "updated_at": at.Unix()}}

	res, err := r.requests.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update friend request: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing request from one already resolved.
		if _, ferr := r.FindRequest(ctx, senderID, receiverID); ferr != nil {
			return ferr
		}
		return domain.ErrRequestResolved
	}
	return nil
}

func (r *MongoFriendRepository) EdgeExists(ctx context.Context, a, b string) (bool, error) {
	lo, hi := domain.CanonicalPair(a, b)
	n, err := r.friendships.CountDocuments(ctx, bson.M{"user_lo": lo, "user_hi": hi})
	if err != nil {
		return false, fmt.Errorf("count friendships: %w", err)
	}
	return n > 0, nil
}

func (r *MongoFriendRepository) DeleteEdge(ctx context.Context, a, b string) error {
	lo, hi := domain.CanonicalPair(a, b)
	if _, err := r.friendships.DeleteOne(ctx, bson.M{"user_lo": lo, "user_hi": hi}); err != nil {
		return fmt.Errorf("delete friendship: %w", err)
	}
	return nil
}

func (r *MongoFriendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user_lo": userID},
		bson.M{"user_hi": userID},
	}}
	cur, err := r.friendships.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find friendships: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var mf mongoFriendship
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode friendship: %w", err)
		}
		edge := domain.Friendship{UserLo: mf.UserLo, UserHi: mf.UserHi}
		ids = append(ids, edge.Other(userID))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate friendships: %w", err)
	}
	return ids, nil
}

// PurgeUser removes every edge and request referencing the user. Called when
// an account is deleted.
func (r *MongoFriendRepository) PurgeUser(ctx context.Context, userID string) error {
	edgeFilter := bson.M{"$or": bson.A{
		bson.M{"user_lo": userID},
		bson.M{"user_hi": userID},
	}}
	if _, err := r.friendships.DeleteMany(ctx, edgeFilter); err != nil {
		return fmt.Errorf("purge friendships: %w", err)
	}

	reqFilter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	if _, err := r.requests.DeleteMany(ctx, reqFilter); err != nil {
		return fmt.Errorf("purge friend requests: %w", err)
	}
	return nil
}
