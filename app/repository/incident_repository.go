package repository

import (
	"github.com/muhafiz/muhafiz-api/app/models"
	"gorm.io/gorm"
)

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(incident *models.Incident) error {
	return r.db.Omit("Creator").Create(incident).Error
}

// GetByID retrieves an incident, optionally with the reporting user's summary
func (r *incidentRepository) GetByID(id string, withCreator bool) (*models.Incident, error) {
	var incident models.Incident
	q := r.db
	if withCreator {
		q = q.Preload("Creator")
	}
	if err := q.First(&incident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// List returns every incident, most recent first
func (r *incidentRepository) List(withCreator bool) ([]models.Incident, error) {
	var incidents []models.Incident
	q := r.db.Order("created_at DESC")
	if withCreator {
		q = q.Preload("Creator")
	}
	err := q.Find(&incidents).Error
	return incidents, err
}

// Update merges the patch into the stored incident
func (r *incidentRepository) Update(id string, patch models.IncidentPatch) (*models.Incident, error) {
	return mutateLocked(r.db, id, func(i *models.Incident) error {
		patch.Apply(i)
		return nil
	})
}

// UpdateStatus replaces the workflow status. Any value is accepted.
func (r *incidentRepository) UpdateStatus(id, status string) (*models.Incident, error) {
	return mutateLocked(r.db, id, func(i *models.Incident) error {
		i.Status = status
		return nil
	})
}

func (r *incidentRepository) Delete(id string) error {
	return deleteByID[models.Incident](r.db, id)
}
