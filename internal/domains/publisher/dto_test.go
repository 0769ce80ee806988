package publisher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePublisherRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := CreatePublisherRequest{Name: "Hanbit Media"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		req := CreatePublisherRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("bad established date", func(t *testing.T) {
		date := "March 2, 1993"
		req := CreatePublisherRequest{Name: "Hanbit Media", EstablishedDate: &date}
		assert.Error(t, req.Validate())
	})
}

func TestCreatePublisherRequest_ToEntity(t *testing.T) {
	date := "1993-03-02"
	address := "12 Sejong-daero, Seoul"
	req := CreatePublisherRequest{
		Name:            "Hanbit Media",
		EstablishedDate: &date,
		Address:         &address,
	}

	p := req.ToEntity()
	assert.Equal(t, "Hanbit Media", p.Name)
	require.NotNil(t, p.EstablishedDate)
	assert.Equal(t, time.Date(1993, 3, 2, 0, 0, 0, 0, time.UTC), *p.EstablishedDate)
	require.NotNil(t, p.Address)
	assert.Equal(t, address, *p.Address)
}

func TestCreatePublisherRequest_ApplyToEntity(t *testing.T) {
	date := "1993-03-02"
	address := "12 Sejong-daero, Seoul"
	p := (&CreatePublisherRequest{
		Name:            "Hanbit Media",
		EstablishedDate: &date,
		Address:         &address,
	}).ToEntity()

	// Full replace: omitted optionals are cleared
	(&CreatePublisherRequest{Name: "Renamed"}).ApplyToEntity(p)

	assert.Equal(t, "Renamed", p.Name)
	assert.Nil(t, p.EstablishedDate)
	assert.Nil(t, p.Address)
}
