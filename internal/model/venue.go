package model

// Venue represents a physical location that can host shows. This struct
// corresponds to a row in the `venues` table. Deleting a venue deletes
// every show booked at it.
//
// Fields:
//  ID                 – primary key identifier, assigned by the database.
//  Name               – unique venue name.
//  City, State        – location used for grouping on the venues page.
//  Address, Phone     – required contact details.
//  ImageLink          – optional image URL ("" when absent).
//  FacebookLink       – optional Facebook page URL.
//  Website            – optional website URL.
//  Genres             – ordered set of genres, never nil.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional free text shown when seeking talent.
type Venue struct {
	ID                 int64    `json:"id"`                  // venues.id
	Name               string   `json:"name"`                // venues.name
	City               string   `json:"city"`                // venues.city
	State              string   `json:"state"`               // venues.state
	Address            string   `json:"address"`             // venues.address
	Phone              string   `json:"phone"`               // venues.phone
	ImageLink          string   `json:"image_link"`          // venues.image_link
	FacebookLink       string   `json:"facebook_link"`       // venues.facebook_link
	Website            string   `json:"website"`             // venues.website
	Genres             []string `json:"genres"`              // venues.genres (JSON array)
	SeekingTalent      bool     `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string   `json:"seeking_description"` // venues.seeking_description
}

// VenueFields holds every editable venue field. Create and Update both take
// the full set; an update replaces all of them.
type VenueFields struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Address            string   `json:"address" form:"address"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	Website            string   `json:"website" form:"website"`
	Genres             []string `json:"genres" form:"genres"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// Fields returns the editable part of v.
func (v Venue) Fields() VenueFields {
	return VenueFields{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             v.Genres,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// ListingID returns the venue id.
func (v Venue) ListingID() int64 { return v.ID }

// ListingName returns the venue name.
func (v Venue) ListingName() string { return v.Name }

// Normalize returns a copy of f with genres deduplicated and never nil.
func (f VenueFields) Normalize() VenueFields {
	f.Genres = NormalizeGenres(f.Genres)
	return f
}

// Validate checks the venue rules that do not need the database. Name
// uniqueness is enforced by the repository.
func (f VenueFields) Validate() error {
	checks := []error{
		required("name", f.Name, maxNameLen),
		required("city", f.City, maxCityLen),
		required("state", f.State, maxStateLen),
		required("address", f.Address, maxAddressLen),
		required("phone", f.Phone, maxPhoneLen),
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

// CityGroup is one distinct (city, state) pair with every venue located there.
type CityGroup struct {
	City   string  `json:"city"`
	State  string  `json:"state"`
	Venues []Venue `json:"venues"`
}
