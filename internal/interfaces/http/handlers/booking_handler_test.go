package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateBookingIssuesTicket(t *testing.T) {
	s := newTestServer(t, true)
	_, token := s.tokenForUser(t, "user")

	w := s.do(t, http.MethodPost, "/api/v1/bookings", token, map[string]interface{}{
		"type": "flight",
		"data": map[string]interface{}{"origin": "BLR", "destination": "GOI"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	booking := body["booking"].(map[string]interface{})
	ref := booking["reference"].(string)
	require.True(t, strings.HasPrefix(ref, "WL-"), "reference %q", ref)
	ticket := body["ticket"].(string)
	require.NotEmpty(t, ticket)

	// The ticket resolves back to the booking without any credentials.
	w = s.do(t, http.MethodGet, "/api/v1/tickets/verify?token="+url.QueryEscape(ticket), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	verified := decodeBody(t, w)
	require.Equal(t, true, verified["valid"])
	require.Equal(t, ref, verified["reference"])
	require.Equal(t, "flight", verified["type"])
}

func TestCreateBookingRejectsUnknownType(t *testing.T) {
	s := newTestServer(t, true)
	_, token := s.tokenForUser(t, "user")

	w := s.do(t, http.MethodPost, "/api/v1/bookings", token, map[string]interface{}{
		"type": "cruise",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/v1/bookings", "", map[string]interface{}{
		"type": "hotel",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListBookingsAnonymousGetsEmptyList(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/bookings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListBookingsScopedToOwner(t *testing.T) {
	s := newTestServer(t, true)
	_, ownerToken := s.tokenForUser(t, "user")
	_, otherToken := s.tokenForUser(t, "user")

	w := s.do(t, http.MethodPost, "/api/v1/bookings", ownerToken, map[string]interface{}{
		"type": "hotel",
		"data": map[string]interface{}{"nights": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/bookings", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []map[string]interface{}
	requireJSONList(t, w.Body.Bytes(), &mine)
	require.Len(t, mine, 1)

	w = s.do(t, http.MethodGet, "/api/v1/bookings", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetBookingHiddenFromNonOwner(t *testing.T) {
	s := newTestServer(t, true)
	_, ownerToken := s.tokenForUser(t, "user")
	_, otherToken := s.tokenForUser(t, "user")

	w := s.do(t, http.MethodPost, "/api/v1/bookings", ownerToken, map[string]interface{}{
		"type": "restaurant",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["booking"].(map[string]interface{})["id"].(string)

	w = s.do(t, http.MethodGet, "/api/v1/bookings/"+id, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/bookings/"+id, otherToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestVerifyTicketRejectsGarbage(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/tickets/verify?token=not-a-ticket", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/tickets/verify", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
