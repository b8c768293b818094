package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	assert.NoError(t, err)
	return s
}

// Every association the controllers preload must resolve, otherwise
// gorm rejects the query at runtime.
func TestAppointmentPreloadableRelations(t *testing.T) {
	s := parseSchema(t, &Appointment{})
	for _, name := range []string{"Client", "Services", "Payments"} {
		assert.Contains(t, s.Relationships.Relations, name)
	}
}

func TestSalePreloadableRelations(t *testing.T) {
	s := parseSchema(t, &Sale{})
	assert.Contains(t, s.Relationships.Relations, "Items")
}

func TestUserPreloadableRelations(t *testing.T) {
	s := parseSchema(t, &User{})
	assert.Contains(t, s.Relationships.Relations, "Salon")
}

// Service lines snapshot name, price and duration at selection time;
// they deliberately carry no association back to the catalog.
func TestAppointmentServiceHasNoRelations(t *testing.T) {
	s := parseSchema(t, &AppointmentService{})
	assert.Empty(t, s.Relationships.Relations)
}
