package model

// Artist represents a performer that can be booked into shows. It has the
// same shape as Venue without an address, and unlike Venue its image link
// is required. Deleting an artist deletes every show it is booked into.
type Artist struct {
	ID                 int64    `json:"id"`                  // artists.id
	Name               string   `json:"name"`                // artists.name
	City               string   `json:"city"`                // artists.city
	State              string   `json:"state"`               // artists.state
	Phone              string   `json:"phone"`               // artists.phone
	ImageLink          string   `json:"image_link"`          // artists.image_link (required)
	FacebookLink       string   `json:"facebook_link"`       // artists.facebook_link
	Website            string   `json:"website"`             // artists.website
	Genres             []string `json:"genres"`              // artists.genres (JSON array)
	SeekingVenue       bool     `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string   `json:"seeking_description"` // artists.seeking_description
}

// ArtistFields holds every editable artist field.
type ArtistFields struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	Website            string   `json:"website" form:"website"`
	Genres             []string `json:"genres" form:"genres"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// Fields returns the editable part of a.
func (a Artist) Fields() ArtistFields {
	return ArtistFields{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		Genres:             a.Genres,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (a Artist) ListingID() int64    { return a.ID }
func (a Artist) ListingName() string { return a.Name }

// Normalize returns a copy of f with genres deduplicated and never nil.
func (f ArtistFields) Normalize() ArtistFields {
	f.Genres = NormalizeGenres(f.Genres)
	return f
}

// Validate checks the artist rules that do not need the database.
func (f ArtistFields) Validate() error {
	checks := []error{
		required("name", f.Name, maxNameLen),
		required("city", f.City, maxCityLen),
		required("state", f.State, maxStateLen),
		required("phone", f.Phone, maxPhoneLen),
		required("image_link", f.ImageLink, 0),
		optional("website", f.Website, maxWebsiteLen),
		validateGenres(f.Genres),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
