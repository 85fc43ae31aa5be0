package services

import (
	"context"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgSubscriptionNotFound = "Subscription not found."
	msgSubscriptionExists   = "This user is already subscribed to this target."
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, req *validators.SubscriptionCreateRequest) (*models.UserSubscription, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.UserSubscription, error)
	Unsubscribe(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error)
}

type subscriptionService struct {
	subRepo   interfaces.SubscriptionRepository
	userRepo  interfaces.UserRepository
	routeRepo interfaces.RouteRepository
	busRepo   interfaces.BusRepository
}

func NewSubscriptionService(
	subRepo interfaces.SubscriptionRepository,
	userRepo interfaces.UserRepository,
	routeRepo interfaces.RouteRepository,
	busRepo interfaces.BusRepository,
) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo, routeRepo: routeRepo, busRepo: busRepo}
}

func (s *subscriptionService) Subscribe(ctx context.Context, req *validators.SubscriptionCreateRequest) (*models.UserSubscription, error) {
	subscription := &models.UserSubscription{
		UserID:  validators.MustObjectID(req.UserID),
		RouteID: validators.OptionalObjectID(req.RouteID),
		BusID:   validators.OptionalObjectID(req.BusID),
	}

	if _, err := s.userRepo.GetByID(ctx, subscription.UserID); err != nil {
		return nil, lookupErr(err, msgUserNotFound)
	}
	if subscription.RouteID != nil {
		if _, err := s.routeRepo.GetByID(ctx, *subscription.RouteID); err != nil {
			return nil, lookupErr(err, msgRouteNotFound)
		}
	}
	if subscription.BusID != nil {
		if _, err := s.busRepo.GetByID(ctx, *subscription.BusID); err != nil {
			return nil, lookupErr(err, msgBusNotFound)
		}
	}

	existing, err := s.subRepo.Find(ctx, subscription.UserID, subscription.RouteID, subscription.BusID)
	if err := checkUnique(err, func() bool { return existing != nil }, msgSubscriptionExists); err != nil {
		return nil, err
	}

	if err := s.subRepo.Create(ctx, subscription); err != nil {
		return nil, writeErr(err, msgSubscriptionExists)
	}
	return subscription, nil
}

func (s *subscriptionService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.UserSubscription, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupErr(err, msgUserNotFound)
	}
	subscriptions, err := s.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}
	return subscriptions, nil
}

// Unsubscribe removes the subscription document outright.
func (s *subscriptionService) Unsubscribe(ctx context.Context, id primitive.ObjectID) (*models.UserSubscription, error) {
	subscription, err := s.subRepo.Delete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgSubscriptionNotFound)
	}
	return subscription, nil
}
