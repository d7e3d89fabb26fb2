package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/logger"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// IRestaurantService searches restaurants near a named place. Geoapify
// has no free-text "restaurants in X" endpoint, so every search is a
// geocode of the location followed by a places lookup around it.
type IRestaurantService interface {
	Search(ctx context.Context, location, cuisine string, limit int) ([]store.Restaurant, error)
}

type restaurantService struct {
	apiKey     string
	minRating  float64
	cache      sync.Map
	geocodeURL string
	placesURL  string
	log        logger.ILogger
}

type cachedItem struct {
	data      interface{}
	expiresAt time.Time
}

const searchRadiusMeters = 5000

func NewRestaurantService(apiKey string, minRating float64, log logger.ILogger) IRestaurantService {
	return &restaurantService{
		apiKey:     apiKey,
		minRating:  minRating,
		geocodeURL: "https://api.geoapify.com/v1/geocode/search",
		placesURL:  "https://api.geoapify.com/v2/places",
		log:        log,
	}
}

func (s *restaurantService) getFromCache(key string) (interface{}, bool) {
	val, ok := s.cache.Load(key)
	if !ok {
		return nil, false
	}
	item := val.(cachedItem)
	if time.Now().After(item.expiresAt) {
		s.cache.Delete(key)
		return nil, false
	}
	return item.data, true
}

func (s *restaurantService) setCache(key string, data interface{}, duration time.Duration) {
	s.cache.Store(key, cachedItem{
		data:      data,
		expiresAt: time.Now().Add(duration),
	})
}

func (s *restaurantService) Search(ctx context.Context, location, cuisine string, limit int) ([]store.Restaurant, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("restaurant search is not configured")
	}
	if limit <= 0 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("restaurants:%s:%s", strings.ToLower(location), strings.ToLower(cuisine))
	if val, ok := s.getFromCache(cacheKey); ok {
		return capRestaurants(val.([]store.Restaurant), limit), nil
	}

	lat, lon, err := s.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	all, err := s.places(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	picked := filterByCuisine(all, cuisine)
	if len(picked) == 0 {
		// Nothing tagged with the cuisine nearby; any restaurant beats an
		// empty answer.
		picked = all
	}

	kept := make([]store.Restaurant, 0, len(picked))
	for _, r := range picked {
		// Unrated places pass; Geoapify rarely carries ratings and we
		// must not drop the whole city for it.
		if r.Rating > 0 && r.Rating < s.minRating {
			continue
		}
		kept = append(kept, r)
	}

	s.setCache(cacheKey, kept, 1*time.Hour)
	s.log.Info("restaurants", "search complete", map[string]interface{}{
		"location": location, "cuisine": cuisine, "found": len(kept),
	})
	return capRestaurants(kept, limit), nil
}

func (s *restaurantService) geocode(ctx context.Context, location string) (float64, float64, error) {
	params := url.Values{}
	params.Add("text", location)
	params.Add("limit", "1")
	params.Add("format", "json")
	params.Add("apiKey", s.apiKey)

	body, err := s.get(ctx, s.geocodeURL+"?"+params.Encode())
	if err != nil {
		return 0, 0, err
	}

	var result struct {
		Results []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, 0, err
	}
	if len(result.Results) == 0 {
		return 0, 0, fmt.Errorf("could not locate %q", location)
	}
	return result.Results[0].Lat, result.Results[0].Lon, nil
}

func (s *restaurantService) places(ctx context.Context, lat, lon float64) ([]store.Restaurant, error) {
	params := url.Values{}
	params.Add("categories", "catering.restaurant")
	params.Add("filter", fmt.Sprintf("circle:%f,%f,%d", lon, lat, searchRadiusMeters))
	params.Add("limit", "20")
	params.Add("apiKey", s.apiKey)

	body, err := s.get(ctx, s.placesURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result struct {
		Features []struct {
			Properties struct {
				Name         string `json:"name"`
				Formatted    string `json:"formatted"`
				OpeningHours string `json:"opening_hours"`
				Datasource   struct {
					Raw struct {
						Cuisine string `json:"cuisine"`
						Phone   string `json:"phone"`
					} `json:"raw"`
				} `json:"datasource"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	restaurants := []store.Restaurant{}
	seen := make(map[string]bool)
	for _, f := range result.Features {
		p := f.Properties
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		restaurants = append(restaurants, store.Restaurant{
			Name:    p.Name,
			Address: p.Formatted,
			Hours:   p.OpeningHours,
			Cuisine: p.Datasource.Raw.Cuisine,
			Phone:   p.Datasource.Raw.Phone,
			Source:  "geoapify",
		})
	}
	return restaurants, nil
}

func (s *restaurantService) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoapify returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func filterByCuisine(restaurants []store.Restaurant, cuisine string) []store.Restaurant {
	if cuisine == "" {
		return restaurants
	}
	want := strings.ToLower(cuisine)
	matched := []store.Restaurant{}
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Cuisine), want) ||
			strings.Contains(strings.ToLower(r.Name), want) {
			matched = append(matched, r)
		}
	}
	return matched
}

func capRestaurants(restaurants []store.Restaurant, limit int) []store.Restaurant {
	if len(restaurants) <= limit {
		return restaurants
	}
	return restaurants[:limit]
}
