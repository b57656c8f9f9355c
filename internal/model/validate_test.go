package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVenue() VenueFields {
	return VenueFields{
		Name:    "The Musical Hop",
		City:    "San Francisco",
		State:   "CA",
		Address: "1015 Folsom Street",
		Phone:   "123-123-1234",
		Genres:  []string{"Jazz", "Reggae"},
	}
}

func validArtist() ArtistFields {
	return ArtistFields{
		Name:      "Guns N Petals",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "326-123-5000",
		ImageLink: "https://images.example.com/petals.jpg",
		Genres:    []string{"Rock n Roll"},
	}
}

func TestVenueFieldsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validVenue().Validate())

	cases := []struct {
		name  string
		edit  func(*VenueFields)
		field string
	}{
		{"empty name", func(f *VenueFields) { f.Name = "" }, "name"},
		{"blank city", func(f *VenueFields) { f.City = "   " }, "city"},
		{"missing state", func(f *VenueFields) { f.State = "" }, "state"},
		{"missing address", func(f *VenueFields) { f.Address = "" }, "address"},
		{"missing phone", func(f *VenueFields) { f.Phone = "" }, "phone"},
		{"long phone", func(f *VenueFields) { f.Phone = strings.Repeat("1", 21) }, "phone"},
		{"long website", func(f *VenueFields) { f.Website = strings.Repeat("w", 201) }, "website"},
		{"empty genre", func(f *VenueFields) { f.Genres = []string{"Jazz", ""} }, "genres[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validVenue()
			tc.edit(&f)
			err := f.Validate()
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "error = %v", err)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

func TestVenueImageLinkIsOptional(t *testing.T) {
	t.Parallel()

	f := validVenue()
	f.ImageLink = ""
	assert.NoError(t, f.Validate())
}

func TestArtistImageLinkIsRequired(t *testing.T) {
	t.Parallel()

	f := validArtist()
	require.NoError(t, f.Validate())

	f.ImageLink = ""
	var fe *FieldError
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, "image_link", fe.Field)
}

func TestNormalizeGenres(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, NormalizeGenres(nil))
	assert.Equal(t, []string{"Jazz", "Blues"}, NormalizeGenres([]string{"Jazz", "Blues", "Jazz"}))

	f := VenueFields{Genres: nil}.Normalize()
	assert.NotNil(t, f.Genres)
}

func TestFieldsRoundTrip(t *testing.T) {
	t.Parallel()

	v := Venue{ID: 7, Name: "Park Square Live", City: "Austin", State: "TX", Genres: []string{"Folk"}}
	assert.Equal(t, "Park Square Live", v.Fields().Name)
	assert.Equal(t, int64(7), v.ListingID())

	a := Artist{ID: 3, Name: "The Wild Sax Band", ImageLink: "x"}
	assert.Equal(t, "x", a.Fields().ImageLink)
	assert.Equal(t, "The Wild Sax Band", a.ListingName())
}
