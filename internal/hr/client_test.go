package hr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

func writePage(t *testing.T, w http.ResponseWriter, data interface{}, hasNext bool) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": data,
		"meta": map[string]interface{}{"has_next_page": hasNext},
	})
	require.NoError(t, err)
}

func TestFetchAll_FollowsPages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "secret", r.Header.Get(HeaderAPIKey))
		assert.Equal(t, ResourceEmployees, r.URL.Path)
		assert.Equal(t, strconv.Itoa(DefaultPageSize), r.URL.Query().Get(ParamLimit))

		switch r.URL.Query().Get(ParamPage) {
		case "1":
			writePage(t, w, []Employee{{ID: 1, FirstName: "Ana"}, {ID: 2, FirstName: "Bo"}}, true)
		case "2":
			writePage(t, w, []Employee{{ID: 3, FirstName: "Cy"}}, false)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get(ParamPage))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	got, err := c.Employees(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[2].ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchAll_ModuleUnavailableIsEmpty(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound} {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "module not enabled", status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", time.Second)
			got, err := c.CustomResourceValues(context.Background())

			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFetchAll_NotConfigured(t *testing.T) {
	c := NewClient("", "", time.Second)
	got, err := c.Teams(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAll_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", time.Second)
	_, err := c.Employees(context.Background())

	assert.ErrorIs(t, err, domain.ErrUpstreamAuth)
}

func TestFetchAll_BadRequestIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.Fields(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrModuleUnavailable)
}

func TestFetchAll_ServerErrorFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.Teams(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchAll_TimeoutFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "k", 50*time.Millisecond)
	_, err := c.Teams(context.Background())

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPaginate_StopsWhenConsumerBreaks(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writePage(t, w, []LeaveType{{ID: 1}, {ID: 2}}, true)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	seen := 0
	for _, err := range Paginate[LeaveType](context.Background(), c, ResourceLeaveTypes, nil) {
		require.NoError(t, err)
		seen++
		if seen == 1 {
			break
		}
	}

	assert.Equal(t, 1, seen)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLeavesOn_SendsDayRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-05-04", r.URL.Query().Get(ParamFrom))
		assert.Equal(t, "2026-05-04", r.URL.Query().Get(ParamTo))
		writePage(t, w, []Leave{{ID: 1, EmployeeID: 9, StartOn: "2026-05-01", FinishOn: "2026-05-08"}}, false)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	got, err := c.LeavesOn(context.Background(), time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].EmployeeID)
}

func TestLeave_Covers(t *testing.T) {
	day := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		leave Leave
		want  bool
	}{
		{"inside", Leave{StartOn: "2026-05-01", FinishOn: "2026-05-08"}, true},
		{"starts today", Leave{StartOn: "2026-05-04", FinishOn: "2026-05-04"}, true},
		{"ended yesterday", Leave{StartOn: "2026-05-01", FinishOn: "2026-05-03"}, false},
		{"starts tomorrow", Leave{StartOn: "2026-05-05", FinishOn: "2026-05-09"}, false},
		{"open ended", Leave{StartOn: "2026-04-01"}, true},
		{"timestamp form", Leave{StartOn: "2026-05-04T00:00:00Z", FinishOn: "2026-05-04T23:00:00+02:00"}, true},
		{"unparseable start", Leave{StartOn: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.leave.Covers(day))
		})
	}
}

func TestLeave_IsApproved(t *testing.T) {
	yes, no := true, false
	assert.True(t, Leave{}.IsApproved())
	assert.True(t, Leave{Approved: &yes}.IsApproved())
	assert.False(t, Leave{Approved: &no}.IsApproved())
}

func TestScalar_Unmarshal(t *testing.T) {
	var v struct {
		A Scalar `json:"a"`
		B Scalar `json:"b"`
		C Scalar `json:"c"`
		D Scalar `json:"d"`
		E Scalar `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":42,"c":true,"d":null}`), &v))

	assert.Equal(t, "x", v.A.String())
	n, ok := v.B.Int()
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	assert.Equal(t, "true", v.C.String())
	assert.False(t, v.D.Valid)
	assert.False(t, v.E.Valid)
	assert.Equal(t, "", v.D.String())
}

func TestEmployee_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana Silva", Employee{FirstName: "Ana", LastName: "Silva"}.DisplayName())
	assert.Equal(t, "Dr Ana", Employee{FullName: "Dr Ana", FirstName: "Ana"}.DisplayName())
	assert.Equal(t, "1 rue A, Bât 2", Employee{AddressLine1: "1 rue A", AddressLine2: "Bât 2"}.Address())
	assert.Equal(t, "x", fmt.Sprint(Employee{AddressLine1: "x"}.Address()))
}
