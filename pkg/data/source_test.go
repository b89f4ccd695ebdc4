package data_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careval/pkg/data"
)

const carCSV = `buying,maint,doors,persons,lug_boot,safety,class
vhigh,vhigh,2,2,small,low,unacc
low,low,4,more,big,high,vgood
med,low,3,4,med,high,good
`

const carVariables = `[
	{"name":"buying","role":"Feature","type":"Categorical"},
	{"name":"maint","role":"Feature","type":"Categorical"},
	{"name":"doors","role":"Feature","type":"Categorical"},
	{"name":"persons","role":"Feature","type":"Categorical"},
	{"name":"lug_boot","role":"Feature","type":"Categorical"},
	{"name":"safety","role":"Feature","type":"Categorical"},
	{"name":"class","role":"Target","type":"Categorical"}
]`

// newUCIServer serves a metadata document for dataset 19 and the given CSV body.
func newUCIServer(t *testing.T, variables, csvBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	mux.HandleFunc("/api/dataset", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "19" {
			fmt.Fprint(w, `{"status":404,"message":"dataset not found"}`)
			return
		}
		fmt.Fprintf(w, `{"status":200,"data":{"uci_id":19,"name":"Car Evaluation","data_url":%q,"variables":%s}}`,
			srv.URL+"/static/public/19/data.csv", variables)
	})
	mux.HandleFunc("/static/public/19/data.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, csvBody)
	})
	t.Cleanup(srv.Close)
	return srv
}

func TestUCIClient_Fetch(t *testing.T) {
	srv := newUCIServer(t, carVariables, carCSV)
	client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100, RateBurst: 2})

	got, err := client.Fetch(context.Background(), 19)
	require.NoError(t, err)
	defer got.Release()

	assert.Equal(t, 19, got.ID)
	assert.Equal(t, "Car Evaluation", got.Name)
	assert.Equal(t, []string{"buying", "maint", "doors", "persons", "lug_boot", "safety"}, got.Features.ColumnNames())
	assert.Equal(t, []string{"class"}, got.Targets.ColumnNames())
	assert.Equal(t, 3, got.Features.NumRows())
	assert.Equal(t, 3, got.Targets.NumRows())

	classes, err := got.Targets.Strings("class")
	require.NoError(t, err)
	assert.Equal(t, []string{"unacc", "vgood", "good"}, classes)

	doors, err := got.Features.Strings("doors")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "3"}, doors)
}

func TestUCIClient_FetchErrors(t *testing.T) {
	t.Run("UnknownDataset", func(t *testing.T) {
		srv := newUCIServer(t, carVariables, carCSV)
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataset not found")
	})

	t.Run("VariableNotInFile", func(t *testing.T) {
		vars := `[{"name":"buying","role":"Feature"},{"name":"color","role":"Feature"},{"name":"class","role":"Target"}]`
		srv := newUCIServer(t, vars, carCSV)
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 19)
		require.ErrorIs(t, err, data.ErrSchemaMismatch)
	})

	t.Run("NoTarget", func(t *testing.T) {
		vars := `[{"name":"buying","role":"Feature"}]`
		srv := newUCIServer(t, vars, carCSV)
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 19)
		require.ErrorIs(t, err, data.ErrSchemaMismatch)
	})

	t.Run("NoDataURL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":200,"data":{"uci_id":19,"name":"Car Evaluation","data_url":null}}`)
		}))
		defer srv.Close()
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 19)
		require.ErrorIs(t, err, data.ErrNoData)
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 19)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http status 500")
	})

	t.Run("MalformedMetadata", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>`)
		}))
		defer srv.Close()
		client := data.NewUCIClient(data.UCIConfig{BaseURL: srv.URL, RateLimit: 100})
		_, err := client.Fetch(context.Background(), 19)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode metadata")
	})
}

func TestReadCSV(t *testing.T) {
	tbl, err := data.ReadCSV([]byte("buying,class\nlow,acc\n?,NA\nhigh,\n"))
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []data.ColumnCount{{Column: "buying", Count: 1}, {Column: "class", Count: 2}}, tbl.MissingCounts())

	_, err = data.ReadCSV(nil)
	require.ErrorIs(t, err, data.ErrNoData)
}

func TestReadCSV_DuplicateHeader(t *testing.T) {
	tbl, err := data.ReadCSV([]byte("a, a\nx,y\n"))
	require.ErrorIs(t, err, data.ErrColumnExists)
	assert.Nil(t, tbl)
}
