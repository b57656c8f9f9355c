package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/model"
	"github.com/Timmy-id/fyyur/internal/projection"
	"github.com/Timmy-id/fyyur/internal/repository"
)

var t0 = time.Date(2026, 5, 21, 21, 30, 0, 0, time.UTC)

type repos struct {
	db      *database.DB
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
}

func openTempStore(t *testing.T) repos {
	t.Helper()
	db, err := database.Open(context.Background(), database.Options{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "fyyur.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos{
		db:      db,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db, func() time.Time { return t0 }),
	}
}

func musicalHop() model.VenueFields {
	return model.VenueFields{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		ImageLink:          "https://images.example.com/hop.jpg",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		Website:            "https://www.themusicalhop.com",
		Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks.",
	}
}

func venueAt(name, city, state string) model.VenueFields {
	return model.VenueFields{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1 Main Street",
		Phone:   "555-555-5555",
		Genres:  []string{"Rock n Roll"},
	}
}

func gunsNPetals() model.ArtistFields {
	return model.ArtistFields{
		Name:         "Guns N Petals",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "326-123-5000",
		ImageLink:    "https://images.example.com/petals.jpg",
		FacebookLink: "https://www.facebook.com/GunsNPetals",
		Website:      "https://www.gunsnpetalsband.com",
		Genres:       []string{"Rock n Roll"},
		SeekingVenue: true,
	}
}

func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestVenueCreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	created, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.venues.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, musicalHop(), got.Fields())
}

func TestVenueCreateDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	_, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)

	_, err = s.venues.Create(ctx, musicalHop())
	require.ErrorIs(t, err, repository.ErrValidation)
	var re *repository.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "name", re.Field)
	assert.Equal(t, 1, countRows(t, s.db, "venues"))

	// Names are compared exactly, so a different case is a different name.
	other := musicalHop()
	other.Name = "the musical hop"
	_, err = s.venues.Create(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, countRows(t, s.db, "venues"))
}

func TestConcurrentCreatesSameName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	const writers = 20
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.venues.Create(ctx, musicalHop())
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, repository.ErrValidation) || errors.Is(err, repository.ErrPersistence), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, countRows(t, s.db, "venues"))
}

func TestConcurrentCreatesDistinctNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	const writers = 20
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.venues.Create(ctx, venueAt(fmt.Sprintf("Venue %02d", i), "Austin", "TX"))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "writer %d", i)
	}
	assert.Equal(t, writers, countRows(t, s.db, "venues"))
}

func TestArtistAndVenueNamespacesAreSeparate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	_, err := s.venues.Create(ctx, venueAt("Shared", "Austin", "TX"))
	require.NoError(t, err)
	a := gunsNPetals()
	a.Name = "Shared"
	_, err = s.artists.Create(ctx, a)
	require.NoError(t, err)
}

func TestCreateRejectsInvalidFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	f := musicalHop()
	f.Name = ""
	_, err := s.venues.Create(ctx, f)
	require.ErrorIs(t, err, repository.ErrValidation)

	a := gunsNPetals()
	a.ImageLink = ""
	_, err = s.artists.Create(ctx, a)
	require.ErrorIs(t, err, repository.ErrValidation)

	assert.Zero(t, countRows(t, s.db, "venues"))
	assert.Zero(t, countRows(t, s.db, "artists"))
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	_, err := s.venues.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.artists.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	v, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)

	fields := model.VenueFields{
		Name:    "The Dueling Pianos Bar",
		City:    "New York",
		State:   "NY",
		Address: "335 Delancey Street",
		Phone:   "914-003-1132",
		Genres:  []string{"Classical", "R&B", "Hip-Hop"},
	}
	_, err = s.venues.Update(ctx, v.ID, fields)
	require.NoError(t, err)

	got, err := s.venues.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, fields, got.Fields())

	// Unchanged values still succeed.
	_, err = s.venues.Update(ctx, v.ID, fields)
	require.NoError(t, err)

	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)
	af := a.Fields()
	af.Genres = []string{"Jazz"}
	af.SeekingVenue = false
	af.Website = ""
	_, err = s.artists.Update(ctx, a.ID, af)
	require.NoError(t, err)
	gotArtist, err := s.artists.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, af, gotArtist.Fields())
}

func TestUpdateErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	_, err := s.venues.Update(ctx, 99, musicalHop())
	require.ErrorIs(t, err, repository.ErrNotFound)

	first, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	second, err := s.venues.Create(ctx, venueAt("Park Square Live Music & Coffee", "San Francisco", "CA"))
	require.NoError(t, err)

	_, err = s.venues.Update(ctx, second.ID, musicalHop())
	require.ErrorIs(t, err, repository.ErrValidation)

	got, err := s.venues.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Park Square Live Music & Coffee", got.Name)

	f := first.Fields()
	f.Phone = "415-000-0000"
	_, err = s.venues.Update(ctx, first.ID, f)
	require.NoError(t, err, "keeping its own name is not a conflict")
}

func TestDeleteCascadesToShows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	v, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)
	other, err := s.venues.Create(ctx, venueAt("The Saloon", "Austin", "TX"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v.ID, StartTime: t0.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	_, err = s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: other.ID, StartTime: t0})
	require.NoError(t, err)

	require.NoError(t, s.venues.Delete(ctx, v.ID))
	_, err = s.venues.GetByID(ctx, v.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	shows, err := s.shows.ForVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, shows)
	assert.Equal(t, 1, countRows(t, s.db, "shows"))

	require.NoError(t, s.artists.Delete(ctx, a.ID))
	assert.Zero(t, countRows(t, s.db, "shows"))

	assert.ErrorIs(t, s.venues.Delete(ctx, v.ID), repository.ErrNotFound)
	assert.ErrorIs(t, s.artists.Delete(ctx, a.ID), repository.ErrNotFound)
}

func TestListAllIsOrderedByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	for _, name := range []string{"C", "A", "B"} {
		_, err := s.venues.Create(ctx, venueAt(name, "Austin", "TX"))
		require.NoError(t, err)
	}
	all, err := s.venues.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Less(t, all[0].ID, all[1].ID)

	artists, err := s.artists.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, artists)
	assert.Empty(t, artists)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	hop, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	pianos, err := s.venues.Create(ctx, venueAt("The Dueling Pianos Bar", "New York", "NY"))
	require.NoError(t, err)
	saloon, err := s.venues.Create(ctx, venueAt("The Saloon", "Austin", "TX"))
	require.NoError(t, err)

	ids := func(vs []model.Venue) []int64 {
		out := make([]int64, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}

	cases := []struct {
		term string
		want []int64
	}{
		{"", []int64{hop.ID, pianos.ID, saloon.ID}},
		{"Hop", []int64{hop.ID}},
		{"hOP", []int64{hop.ID}},
		{"the", []int64{hop.ID, pianos.ID, saloon.ID}},
		{"new york", []int64{pianos.ID}},
		{"tx", []int64{saloon.ID}},
		// City and state must match exactly, unlike the name.
		{"York", nil},
		{"Aus", nil},
		// Wildcards are matched literally.
		{"%", nil},
		{"_", nil},
	}
	for _, tc := range cases {
		got, err := s.venues.Search(ctx, tc.term)
		require.NoError(t, err, tc.term)
		if tc.want == nil {
			assert.Empty(t, got, "term %q", tc.term)
			continue
		}
		assert.Equal(t, tc.want, ids(got), "term %q", tc.term)
	}

	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)
	found, err := s.artists.Search(ctx, "petal")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)
	found, err = s.artists.Search(ctx, "san francisco")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestGroupByCityState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	groups, err := s.venues.GroupByCityState(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = s.venues.Create(ctx, venueAt("Austin One", "Austin", "TX"))
	require.NoError(t, err)
	_, err = s.venues.Create(ctx, venueAt("Dallas One", "Dallas", "TX"))
	require.NoError(t, err)
	_, err = s.venues.Create(ctx, venueAt("Austin Two", "Austin", "TX"))
	require.NoError(t, err)

	groups, err = s.venues.GroupByCityState(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Austin", groups[0].City)
	assert.Len(t, groups[0].Venues, 2)
	assert.Equal(t, "Dallas", groups[1].City)
	assert.Len(t, groups[1].Venues, 1)

	seen := map[int64]int{}
	pairs := map[[2]string]int{}
	for _, g := range groups {
		pairs[[2]string{g.City, g.State}]++
		for _, v := range g.Venues {
			seen[v.ID]++
			assert.Equal(t, g.City, v.City)
			assert.Equal(t, g.State, v.State)
		}
	}
	all, err := s.venues.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, len(all))
	for id, n := range seen {
		assert.Equal(t, 1, n, "venue %d", id)
	}
	for pair, n := range pairs {
		assert.Equal(t, 1, n, "pair %v", pair)
	}
}

func TestShowCreateRequiresParents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	v, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)

	_, err = s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v.ID + 100, StartTime: t0})
	require.ErrorIs(t, err, repository.ErrValidation)
	_, err = s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID + 100, VenueID: v.ID, StartTime: t0})
	require.ErrorIs(t, err, repository.ErrValidation)
	assert.Zero(t, countRows(t, s.db, "shows"))
}

func TestShowCreateDefaultsStartTimeToClock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	v, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)

	show, err := s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v.ID})
	require.NoError(t, err)
	assert.True(t, show.StartTime.Equal(t0))
	assert.Equal(t, time.UTC, show.StartTime.Location())
}

func TestShowListings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	v1, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	v2, err := s.venues.Create(ctx, venueAt("The Saloon", "Austin", "TX"))
	require.NoError(t, err)
	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)

	late, err := s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v1.ID, StartTime: t0.Add(48 * time.Hour)})
	require.NoError(t, err)
	early, err := s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v2.ID, StartTime: t0})
	require.NoError(t, err)

	all, err := s.shows.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)
	assert.Equal(t, "The Saloon", all[0].VenueName)
	assert.Equal(t, "Guns N Petals", all[0].ArtistName)
	assert.Equal(t, "https://images.example.com/petals.jpg", all[0].ArtistImageLink)
	assert.True(t, all[1].StartTime.Equal(t0.Add(48*time.Hour)))

	byArtist, err := s.shows.ForArtist(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, byArtist, 2)

	byVenue, err := s.shows.ForVenues(ctx, []int64{v1.ID, v2.ID, 999})
	require.NoError(t, err)
	assert.Len(t, byVenue[v1.ID], 1)
	assert.Len(t, byVenue[v2.ID], 1)
	assert.Empty(t, byVenue[999])

	byArtists, err := s.shows.ForArtists(ctx, []int64{a.ID})
	require.NoError(t, err)
	assert.Len(t, byArtists[a.ID], 2)

	empty, err := s.shows.ForVenues(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestShowsForManyParents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	a, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)
	first, err := s.venues.Create(ctx, venueAt("First", "Austin", "TX"))
	require.NoError(t, err)
	last, err := s.venues.Create(ctx, venueAt("Last", "Dallas", "TX"))
	require.NoError(t, err)
	for _, v := range []model.Venue{first, last, last} {
		_, err := s.shows.Create(ctx, model.ShowInput{ArtistID: a.ID, VenueID: v.ID})
		require.NoError(t, err)
	}

	// Enough ids to span several IN batches, with the real venues at both ends.
	ids := []int64{first.ID}
	for id := int64(10_000); id < 11_200; id++ {
		ids = append(ids, id)
	}
	ids = append(ids, last.ID)

	byVenue, err := s.shows.ForVenues(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, byVenue, 2)
	assert.Len(t, byVenue[first.ID], 1)
	assert.Len(t, byVenue[last.ID], 2)
}

func TestRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := s.venues.Create(ctx, venueAt(name, "Austin", "TX"))
		require.NoError(t, err)
	}
	recent, err := s.venues.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Third", recent[0].Name)
	assert.Equal(t, "Second", recent[1].Name)

	artists, err := s.artists.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestMusicalHopScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)

	venue, err := s.venues.Create(ctx, musicalHop())
	require.NoError(t, err)
	artist, err := s.artists.Create(ctx, gunsNPetals())
	require.NoError(t, err)
	show, err := s.shows.Create(ctx, model.ShowInput{ArtistID: artist.ID, VenueID: venue.ID, StartTime: t0})
	require.NoError(t, err)

	found, err := s.venues.Search(ctx, "Hop")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, venue.ID, found[0].ID)

	shows, err := s.shows.ForVenue(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, show.ID, shows[0].ID)

	past, upcoming := projection.PartitionShows(shows, t0)
	assert.Empty(t, past)
	assert.Len(t, upcoming, 1)

	past, upcoming = projection.PartitionShows(shows, t0.Add(24*time.Hour))
	assert.Len(t, past, 1)
	assert.Empty(t, upcoming)
}

func TestClosedDatabaseIsPersistenceError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTempStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.venues.Create(ctx, musicalHop())
	require.ErrorIs(t, err, repository.ErrPersistence)
	assert.False(t, errors.Is(err, repository.ErrValidation))

	_, err = s.artists.ListAll(ctx)
	require.ErrorIs(t, err, repository.ErrPersistence)
}
