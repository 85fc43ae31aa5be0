package services

import (
	"context"
	"fmt"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgDriverNotFound      = "Driver not found."
	msgDriverLicenseExists = "A driver with this license number already exists."

	driverImageFolder = "drivers"
)

type DriverService interface {
	CreateDriver(ctx context.Context, req *validators.DriverCreateRequest, image *ImageUpload) (*models.Driver, error)
	GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id primitive.ObjectID, req *validators.DriverUpdateRequest, image *ImageUpload) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	ListDrivers(ctx context.Context, filter interfaces.DriverFilter, params *utils.PaginationParams) ([]*models.Driver, int64, error)
}

type driverService struct {
	driverRepo interfaces.DriverRepository
	images     *imageStore
	audit      SystemLogService
	logger     *logger.Logger
}

func NewDriverService(
	driverRepo interfaces.DriverRepository,
	storageProvider storage.StorageProvider,
	imageMaxSide uint,
	audit SystemLogService,
	log *logger.Logger,
) DriverService {
	return &driverService{
		driverRepo: driverRepo,
		images:     &imageStore{storage: storageProvider, maxSide: imageMaxSide, logger: log},
		audit:      audit,
		logger:     log,
	}
}

// CreateDriver stores the image first so the document can reference it. On
// any later failure the stored image is removed again.
func (s *driverService) CreateDriver(ctx context.Context, req *validators.DriverCreateRequest, image *ImageUpload) (*models.Driver, error) {
	profileImage := utils.DefaultProfileImage
	if image != nil {
		key, err := s.images.save(ctx, driverImageFolder, image)
		if err != nil {
			return nil, err
		}
		profileImage = key
	}

	existing, err := s.driverRepo.GetByLicenseNumber(ctx, req.LicenseNumber)
	if err := checkUnique(err, func() bool { return existing != nil }, msgDriverLicenseExists); err != nil {
		s.images.remove(ctx, profileImage)
		return nil, err
	}

	driver := &models.Driver{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LicenseNumber: req.LicenseNumber,
		ContactNumber: req.ContactNumber,
		ProfileImage:  profileImage,
		Status:        models.DriverStatusActive,
	}
	if req.Status != "" {
		driver.Status = models.DriverStatus(req.Status)
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		s.images.remove(ctx, profileImage)
		return nil, writeErr(err, msgDriverLicenseExists)
	}

	s.audit.Record(ctx, "driver.create", fmt.Sprintf("Created driver %s", driver.FullName()), "driver", driver.ID)
	return driver, nil
}

func (s *driverService) GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgDriverNotFound)
	}
	return driver, nil
}

// UpdateDriver replaces the profile image when a new one is uploaded; the
// previous image is removed only after the update succeeds.
func (s *driverService) UpdateDriver(ctx context.Context, id primitive.ObjectID, req *validators.DriverUpdateRequest, image *ImageUpload) (*models.Driver, error) {
	current, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgDriverNotFound)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["f_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["l_name"] = *req.LastName
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = *req.ContactNumber
	}
	if req.Status != nil {
		updates["status"] = models.DriverStatus(*req.Status)
	}
	if req.LicenseNumber != nil && *req.LicenseNumber != current.LicenseNumber {
		existing, err := s.driverRepo.GetByLicenseNumber(ctx, *req.LicenseNumber)
		if err := checkUnique(err, func() bool { return existing.ID != id }, msgDriverLicenseExists); err != nil {
			return nil, err
		}
		updates["license_number"] = *req.LicenseNumber
	}

	var newImage string
	if image != nil {
		key, err := s.images.save(ctx, driverImageFolder, image)
		if err != nil {
			return nil, err
		}
		newImage = key
		updates["profile_image"] = key
	}

	if len(updates) == 0 {
		return current, nil
	}

	// current may be refreshed by Update, so keep the key being replaced.
	oldImage := current.ProfileImage
	driver, err := s.driverRepo.Update(ctx, id, updates)
	if err != nil {
		s.images.remove(ctx, newImage)
		if utils.IsNotFound(err) {
			return nil, utils.NewNotFoundError(msgDriverNotFound)
		}
		return nil, writeErr(err, msgDriverLicenseExists)
	}

	if newImage != "" {
		s.images.remove(ctx, oldImage)
	}

	s.audit.Record(ctx, "driver.update", fmt.Sprintf("Updated driver %s", driver.FullName()), "driver", driver.ID)
	return driver, nil
}

func (s *driverService) DeleteDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	driver, err := s.driverRepo.SoftDelete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgDriverNotFound)
	}

	s.audit.Record(ctx, "driver.delete", fmt.Sprintf("Deleted driver %s", driver.FullName()), "driver", driver.ID)
	return driver, nil
}

func (s *driverService) ListDrivers(ctx context.Context, filter interfaces.DriverFilter, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	drivers, total, err := s.driverRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, utils.WrapInternal(err)
	}
	return drivers, total, nil
}
