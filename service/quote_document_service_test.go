package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/pricing"
	"rocketboost-admin/utils"
)

func TestQuoteDocumentService_RenderHTML(t *testing.T) {
	engine, err := pricing.NewEngine("")
	require.NoError(t, err)

	s, err := NewQuoteDocumentService(engine, "")
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }

	quote := engine.Quote([]pricing.LineItem{
		{Platform: "ig", ServiceType: pricing.ServiceFollowers, Quantity: 1000},
		{Platform: "ig", ServiceType: pricing.ServiceLikes, Quantity: 0},
		{Platform: "youtube", ServiceType: pricing.ServiceFollowers, Quantity: 100},
	})

	html, err := s.RenderHTML(quote)
	require.NoError(t, err)
	assert.Contains(t, html, "Rocket Boost")
	assert.Contains(t, html, "2026-03-10 19:00")
	assert.Contains(t, html, "<td>Instagram</td>")
	assert.Contains(t, html, "<td>YouTube</td>")
	assert.Contains(t, html, "Subscribers")
	assert.NotContains(t, html, "Likes")
	assert.Contains(t, html, "ยอดที่ต้องชำระ")
	assert.Contains(t, html, utils.FormatTHB(quote.TotalPrice))
}

func TestDetectChromePath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

	assert.Equal(t, fake, detectChromePath(fake))
	assert.NotEqual(t, filepath.Join(dir, "missing"), detectChromePath(filepath.Join(dir, "missing")))
}
