package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
	"github.com/tidwall/gjson"
)

// ListingURL returns the URL of the first page of the character listing.
func (c *Client) ListingURL() string {
	u := c.baseURL.JoinPath("character")
	q := u.Query()
	q.Set("page", "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchCharacters returns the results of the first listing page.
func (c *Client) FetchCharacters(ctx context.Context) ([]model.Character, error) {
	listing := c.ListingURL()
	body, err := c.get(ctx, listing)
	if err != nil {
		return nil, err
	}

	var characters []model.Character
	if err := decodeField(listing, body, "results", gjson.JSON, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

// FetchPageInfo returns the info block of the first listing page.
// It issues its own request; it does not share one with FetchCharacters.
func (c *Client) FetchPageInfo(ctx context.Context) (model.PageInfo, error) {
	listing := c.ListingURL()
	body, err := c.get(ctx, listing)
	if err != nil {
		return model.PageInfo{}, err
	}

	var info model.PageInfo
	if err := decodeField(listing, body, "info", gjson.JSON, &info); err != nil {
		return model.PageInfo{}, err
	}
	return info, nil
}

// FetchEpisode dereferences an episode URL.
func (c *Client) FetchEpisode(ctx context.Context, episodeURL string) (model.Episode, error) {
	var ep model.Episode
	if err := c.fetchObject(ctx, episodeURL, &ep, "name"); err != nil {
		return model.Episode{}, err
	}
	return ep, nil
}

// FetchLocation dereferences a location URL.
func (c *Client) FetchLocation(ctx context.Context, locationURL string) (model.Location, error) {
	var loc model.Location
	if err := c.fetchObject(ctx, locationURL, &loc, "name", "residents"); err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

// FetchCharacter dereferences a single character URL, such as a
// location resident.
func (c *Client) FetchCharacter(ctx context.Context, characterURL string) (model.Character, error) {
	var ch model.Character
	if err := c.fetchObject(ctx, characterURL, &ch, "id"); err != nil {
		return model.Character{}, err
	}
	return ch, nil
}

// CharacterURL returns the URL of the character with the given id.
func (c *Client) CharacterURL(id int) string {
	return c.baseURL.JoinPath("character", strconv.Itoa(id)).String()
}

// fetchObject GETs rawURL and decodes the whole body into v after
// checking that every required top-level field is present.
func (c *Client) fetchObject(ctx context.Context, rawURL string, v any, required ...string) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: %s: body is not valid JSON", ErrDecode, rawURL)
	}
	for _, field := range required {
		if !gjson.GetBytes(body, field).Exists() {
			return fmt.Errorf("%w: %s: missing field %q", ErrDecode, rawURL, field)
		}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, rawURL, err)
	}
	return nil
}

// decodeField decodes one top-level field of body into v. The field must
// exist and be of the given kind (gjson.JSON covers objects and arrays).
func decodeField(rawURL string, body []byte, field string, kind gjson.Type, v any) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: %s: body is not valid JSON", ErrDecode, rawURL)
	}
	res := gjson.GetBytes(body, field)
	if !res.Exists() || res.Type != kind {
		return fmt.Errorf("%w: %s: missing field %q", ErrDecode, rawURL, field)
	}
	if err := json.Unmarshal([]byte(res.Raw), v); err != nil {
		return fmt.Errorf("%w: %s: field %q: %w", ErrDecode, rawURL, field, err)
	}
	return nil
}
