package feed

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

const (
	SortPopular = "popular"
	SortNewest  = "newest"
	SortRating  = "rating"
	SortName    = "name"
)

// Filters narrows the combined feed before sorting.
type Filters struct {
	Query           string
	Cuisine         string
	IncludeArchived bool
}

// Entry is one deduped feed row. Ratings holds the scope members' own scores
// keyed by rater id, visible-ratings only.
type Entry struct {
	Recipe        *domain.OwnedRecipe    `json:"recipe"`
	Effective     domain.EffectiveRecipe `json:"effective"`
	AverageRating float64                `json:"average_rating"`
	RatingCount   int                    `json:"rating_count"`
	MemberRatings map[uuid.UUID]int      `json:"member_ratings,omitempty"`
}

// Favorite is one common-favorites row.
type Favorite struct {
	Entry
	DistinctRaters int `json:"distinct_raters"`
}

// Service builds read-only cross-member views over one or more collections.
// It never writes; every recipe it returns has passed the view resolver.
type Service struct {
	recipes     *repository.RecipeRepository
	ratings     *repository.RatingRepository
	collections CollectionChecker
	resolver    *Resolver
}

func NewService(recipes *repository.RecipeRepository, ratings *repository.RatingRepository, collections CollectionChecker, resolver *Resolver) *Service {
	return &Service{recipes: recipes, ratings: ratings, collections: collections, resolver: resolver}
}

// CombinedFeed merges the visible recipes of every member of the scope
// collections. The viewer must belong to each scope collection. Recipes linked
// to the same catalogue entry collapse into a single row.
func (s *Service) CombinedFeed(ctx context.Context, viewerID uuid.UUID, scope []uuid.UUID, filters Filters, sortKey string, page, limit int) ([]Entry, int, error) {
	switch sortKey {
	case "", SortPopular, SortNewest, SortRating, SortName:
	default:
		return nil, 0, ErrBadSort
	}
	if sortKey == "" {
		sortKey = SortNewest
	}

	memberIDs, err := s.scopeMembers(ctx, viewerID, scope)
	if err != nil {
		return nil, 0, err
	}

	archivedOwner := uuid.Nil
	if filters.IncludeArchived {
		archivedOwner = viewerID
	}
	candidates, err := s.recipes.ListOwnedByOwners(ctx, memberIDs, archivedOwner)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.assemble(ctx, viewerID, memberIDs, candidates, filters)
	if err != nil {
		return nil, 0, err
	}

	sortEntries(entries, sortKey)

	total := len(entries)
	entries = paginate(entries, page, limit)
	return entries, total, nil
}

// CommonFavorites returns the scope's recipes rated by at least minRaters
// distinct members, best first.
func (s *Service) CommonFavorites(ctx context.Context, viewerID uuid.UUID, scope []uuid.UUID, minRaters, limit int) ([]Favorite, error) {
	if minRaters < 1 {
		minRaters = 2
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	memberIDs, err := s.scopeMembers(ctx, viewerID, scope)
	if err != nil {
		return nil, err
	}

	candidates, err := s.recipes.ListOwnedByOwners(ctx, memberIDs, uuid.Nil)
	if err != nil {
		return nil, err
	}

	entries, err := s.assemble(ctx, viewerID, memberIDs, candidates, Filters{})
	if err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	var favorites []Favorite
	for _, e := range entries {
		distinct := 0
		for raterID := range e.MemberRatings {
			if members[raterID] {
				distinct++
			}
		}
		if distinct >= minRaters {
			favorites = append(favorites, Favorite{Entry: e, DistinctRaters: distinct})
		}
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		a, b := favorites[i], favorites[j]
		if a.DistinctRaters != b.DistinctRaters {
			return a.DistinctRaters > b.DistinctRaters
		}
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		return a.Effective.Title < b.Effective.Title
	})

	if len(favorites) > limit {
		favorites = favorites[:limit]
	}
	return favorites, nil
}

// scopeMembers validates the scope and returns the union of member ids.
func (s *Service) scopeMembers(ctx context.Context, viewerID uuid.UUID, scope []uuid.UUID) ([]uuid.UUID, error) {
	if len(scope) == 0 {
		return nil, ErrEmptyScope
	}
	for _, collectionID := range scope {
		member, err := s.collections.IsMember(ctx, collectionID, viewerID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotScopeMember
		}
	}
	return s.collections.MemberIDs(ctx, scope)
}

// assemble filters candidates through the view resolver, dedupes linked
// recipes on their catalogue id, and attaches aggregates and member ratings.
func (s *Service) assemble(ctx context.Context, viewerID uuid.UUID, memberIDs []uuid.UUID, candidates []domain.OwnedRecipe, filters Filters) ([]Entry, error) {
	var catalogueIDs []uuid.UUID
	seenCatalogue := make(map[uuid.UUID]bool)
	for i := range candidates {
		if id := candidates[i].CatalogueRecipeID; id != nil && !seenCatalogue[*id] {
			seenCatalogue[*id] = true
			catalogueIDs = append(catalogueIDs, *id)
		}
	}
	catalogues, err := s.recipes.GetCataloguesByIDs(ctx, catalogueIDs)
	if err != nil {
		return nil, err
	}

	catalogueRatings, err := s.ratings.ListForCatalogues(ctx, catalogueIDs)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var ownedIDs []uuid.UUID
	taken := make(map[uuid.UUID]bool)
	for i := range candidates {
		rec := &candidates[i]
		if rec.IsArchived && !(filters.IncludeArchived && rec.OwnerID == viewerID) {
			continue
		}

		ok, err := s.resolver.CanView(ctx, viewerID, rec)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		// one row per shared catalogue entry, first visible copy wins
		dedupeKey := rec.ID
		if rec.CatalogueRecipeID != nil {
			dedupeKey = *rec.CatalogueRecipeID
		}
		if taken[dedupeKey] {
			continue
		}

		var catalogue *domain.CatalogueRecipe
		if rec.CatalogueRecipeID != nil {
			catalogue = catalogues[*rec.CatalogueRecipeID]
		}
		eff := rec.Effective(catalogue)
		if !matches(eff, filters) {
			continue
		}

		taken[dedupeKey] = true
		entry := Entry{
			Recipe:        rec,
			Effective:     eff,
			AverageRating: rec.AverageRating,
			RatingCount:   rec.RatingCount,
		}
		if catalogue != nil {
			entry.AverageRating = catalogue.AverageRating
			entry.RatingCount = catalogue.RatingCount
		} else {
			ownedIDs = append(ownedIDs, rec.ID)
		}
		entries = append(entries, entry)
	}

	ownedRatings, err := s.ratings.ListForOwnedRecipes(ctx, ownedIDs)
	if err != nil {
		return nil, err
	}

	attachMemberRatings(entries, catalogueRatings, ownedRatings, memberIDs)
	return entries, nil
}

func attachMemberRatings(entries []Entry, catalogueRatings, ownedRatings []domain.Rating, memberIDs []uuid.UUID) {
	members := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	byCatalogue := make(map[uuid.UUID]map[uuid.UUID]int)
	for _, rt := range catalogueRatings {
		if rt.CatalogueRecipeID == nil || !members[rt.RaterID] {
			continue
		}
		m := byCatalogue[*rt.CatalogueRecipeID]
		if m == nil {
			m = make(map[uuid.UUID]int)
			byCatalogue[*rt.CatalogueRecipeID] = m
		}
		m[rt.RaterID] = rt.Score
	}

	byOwned := make(map[uuid.UUID]map[uuid.UUID]int)
	for _, rt := range ownedRatings {
		if rt.OwnedRecipeID == nil || !members[rt.RaterID] {
			continue
		}
		m := byOwned[*rt.OwnedRecipeID]
		if m == nil {
			m = make(map[uuid.UUID]int)
			byOwned[*rt.OwnedRecipeID] = m
		}
		m[rt.RaterID] = rt.Score
	}

	for i := range entries {
		rec := entries[i].Recipe
		if rec.CatalogueRecipeID != nil {
			entries[i].MemberRatings = byCatalogue[*rec.CatalogueRecipeID]
		} else {
			entries[i].MemberRatings = byOwned[rec.ID]
		}
	}
}

func matches(eff domain.EffectiveRecipe, filters Filters) bool {
	if q := strings.TrimSpace(filters.Query); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(eff.Title), q) &&
			!strings.Contains(strings.ToLower(eff.Description), q) {
			return false
		}
	}
	if c := strings.TrimSpace(filters.Cuisine); c != "" {
		if !strings.EqualFold(eff.Cuisine, c) {
			return false
		}
	}
	return true
}

func sortEntries(entries []Entry, sortKey string) {
	newer := func(i, j int) bool {
		a, b := entries[i].Recipe, entries[j].Recipe
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch sortKey {
		case SortPopular:
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
		case SortRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		case SortName:
			if a.Effective.Title != b.Effective.Title {
				return a.Effective.Title < b.Effective.Title
			}
		}
		return newer(i, j)
	})
}

func paginate(entries []Entry, page, limit int) []Entry {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(entries) {
		return []Entry{}
	}
	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}
