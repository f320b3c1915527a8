package server

import (
	"context"

	"github.com/mclemoreauction/tools/internal/auction"
	"github.com/mclemoreauction/tools/internal/labels"
	"github.com/mclemoreauction/tools/internal/lob"
)

type mockAuctionAPI struct {
	Details    *auction.Details
	DetailsErr error
	Results    []auction.Summary
	SearchErr  error
}

func (m *mockAuctionAPI) GetDetails(ctx context.Context, auctionCode string) (*auction.Details, error) {
	if m.DetailsErr != nil {
		return nil, m.DetailsErr
	}
	return m.Details, nil
}

func (m *mockAuctionAPI) Search(ctx context.Context, query string) ([]auction.Summary, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Results, nil
}

type mockMailAPI struct {
	Result    lob.BatchResult
	Err       error
	GotHTML   string
	GotCount  int
	GotDesc   string
}

func (m *mockMailAPI) SendBatch(ctx context.Context, addresses []lob.Address, html string, mergeVars func(lob.Address) map[string]string, description string) (lob.BatchResult, error) {
	m.GotHTML = html
	m.GotCount = len(addresses)
	m.GotDesc = description
	if m.Err != nil {
		return lob.BatchResult{}, m.Err
	}
	return m.Result, nil
}

type mockLabelRenderer struct {
	PDF []byte
	Err error
}

func (m *mockLabelRenderer) DetailedSheets(p labels.Params) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PDF, nil
}

func (m *mockLabelRenderer) StandardLabels(p labels.Params) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PDF, nil
}
