package service

import (
	"encoding/json"
	"strings"
	"testing"

	"sevadesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *models.SubmitRequestForm {
	return &models.SubmitRequestForm{
		Name:          "Shrinivas Kulkarni",
		Phone:         "9876543210",
		City:          "Pune",
		Ward:          "Ward 7",
		ComplaintType: "Water Supply",
		Description:   "No water supply for 3 days in our ward.",
	}
}

func TestSubmitPersistsAnonymizedRequest(t *testing.T) {
	store := &fakeRequestStore{}
	audit := &fakeAuditStore{}
	svc := NewRequestService(store, NewAuditService(audit))

	req, err := svc.Submit(validForm(), "10.0.0.1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.CitizenNameHash, "CITIZEN_"))
	assert.True(t, strings.HasPrefix(req.PhoneHash, "CONTACT_"))
	assert.Equal(t, "Water Department", req.Department)
	assert.Equal(t, models.StatusOpen, req.Status)
	assert.Equal(t, "Pune", req.District)
	require.Len(t, store.requests, 1)
}

func TestSubmitNeverExposesPlaintextIdentity(t *testing.T) {
	store := &fakeRequestStore{}
	audit := &fakeAuditStore{}
	svc := NewRequestService(store, NewAuditService(audit))

	req, err := svc.Submit(validForm(), "10.0.0.1")
	require.NoError(t, err)

	// Neither the stored row, the returned entity, nor the audit trail may
	// carry the raw name or phone.
	for _, payload := range []interface{}{req, store.requests, audit.entries} {
		body, merr := json.Marshal(payload)
		require.NoError(t, merr)
		assert.NotContains(t, string(body), "Shrinivas")
		assert.NotContains(t, string(body), "Kulkarni")
		assert.NotContains(t, string(body), "9876543210")
	}
}

func TestSubmitNamesEveryMissingField(t *testing.T) {
	svc := NewRequestService(&fakeRequestStore{}, nil)

	_, err := svc.Submit(&models.SubmitRequestForm{}, "10.0.0.1")
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t,
		[]string{"name", "phone", "city", "ward", "complaint_type", "description"},
		ve.Fields)
}

func TestSubmitRejectsInvalidOptionalFields(t *testing.T) {
	svc := NewRequestService(&fakeRequestStore{}, nil)

	form := validForm()
	zero := 0
	bad := "Catastrophic"
	form.AffectedCount = &zero
	form.Severity = &bad

	_, err := svc.Submit(form, "10.0.0.1")
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"affected_count", "severity"}, ve.Fields)
}

func TestSubmitAppliesDefaults(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)

	req, err := svc.Submit(validForm(), "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, req.AffectedCount)
	assert.Equal(t, models.SeverityMedium, req.Severity)
	assert.False(t, req.Email.Valid)
}

func TestSubmitHonorsProvidedOptionals(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)

	form := validForm()
	affected := 400
	severity := "Critical"
	email := "citizen@example.com"
	form.AffectedCount = &affected
	form.Severity = &severity
	form.Email = &email

	req, err := svc.Submit(form, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 400, req.AffectedCount)
	assert.Equal(t, models.SeverityCritical, req.Severity)
	assert.Equal(t, "citizen@example.com", req.Email.String)
}

func TestSubmitAuditFollowsPersistence(t *testing.T) {
	t.Run("success records audit", func(t *testing.T) {
		audit := &fakeAuditStore{}
		svc := NewRequestService(&fakeRequestStore{}, NewAuditService(audit))

		req, err := svc.Submit(validForm(), "10.0.0.1")
		require.NoError(t, err)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "New Complaint Submitted", audit.entries[0].Action)
		assert.Equal(t, models.RoleCitizen, audit.entries[0].UserRole)
		assert.Equal(t, req.RequestID, audit.entries[0].DataAccessed)
	})

	t.Run("insert failure records nothing", func(t *testing.T) {
		audit := &fakeAuditStore{}
		store := &fakeRequestStore{insertErr: errStoreDown}
		svc := NewRequestService(store, NewAuditService(audit))

		_, err := svc.Submit(validForm(), "10.0.0.1")
		require.Error(t, err)
		assert.Empty(t, audit.entries)
		assert.Empty(t, store.requests)
	})
}

func TestRouteDepartment(t *testing.T) {
	cases := map[string]string{
		"Water Supply":       "Water Department",
		"Electricity":        "MSEDCL",
		"Road Repair":        "PWD",
		"Drainage":           "PWD",
		"Healthcare":         "Health Department",
		"Garbage Collection": "Sanitation Department",
		"Street Lights":      "Municipal Corporation",
		"Public Transport":   "Transport Department",
		"Unmapped Type":      "General Department",
	}
	for complaintType, want := range cases {
		assert.Equal(t, want, RouteDepartment(complaintType), complaintType)
	}
}

func TestTrackReturnsWhitelistedView(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)

	submitted, err := svc.Submit(validForm(), "10.0.0.1")
	require.NoError(t, err)

	view, err := svc.Track(submitted.RequestID)
	require.NoError(t, err)
	assert.Equal(t, submitted.RequestID, view.RequestID)
	assert.Equal(t, "Water Supply", view.ComplaintType)
	assert.Nil(t, view.ResolvedDate)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hash")
	assert.NotContains(t, string(body), "CITIZEN_")
}

func TestTrackUnknownRequest(t *testing.T) {
	svc := NewRequestService(&fakeRequestStore{}, nil)
	_, err := svc.Track("R-NOPE")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
