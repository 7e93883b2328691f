package handlers_test

import (
	"context"
	"errors"

	"github.com/thdgm/urlshortener/internal/shorturl"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// stubProber is a test double for the reachability probe.
type stubProber struct {
	probeErr error
}

func (p *stubProber) Probe(_ context.Context, _ string) error {
	return p.probeErr
}

// mockStore is a test double for the repository and click store that can be
// configured to return errors.
type mockStore struct {
	saveErr        error
	getByIDErr     error
	saveClickErr   error
	countClicksErr error
	saved          *shorturl.ShortURL
	clicks         int64
}

func (m *mockStore) Save(_ context.Context, link *shorturl.ShortURL) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = link

	return nil
}

func (m *mockStore) GetByID(_ context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}

	if m.saved == nil || m.saved.ID != id {
		return nil, shorturl.ErrNotFound
	}

	return m.saved, nil
}

func (m *mockStore) SaveClick(_ context.Context, _ *shorturl.Click) error {
	if m.saveClickErr != nil {
		return m.saveClickErr
	}

	m.clicks++

	return nil
}

func (m *mockStore) CountClicks(_ context.Context, _ shorturl.ID) (int64, error) {
	if m.countClicksErr != nil {
		return 0, m.countClicksErr
	}

	return m.clicks, nil
}
