package authsdk_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/supaflow/supabase-auth-go/pkg/authsdk"
)

// guardTransport fails the test if any request reaches it. Used to verify
// that local precondition failures never touch the network.
type guardTransport struct {
	t *testing.T
}

func (g guardTransport) RoundTrip(*http.Request) (*http.Response, error) {
	g.t.Error("unexpected network request")
	return nil, errors.New("network use forbidden in this test")
}

// newOfflineClient builds a client whose transport fails the test on use.
func newOfflineClient(t *testing.T, serviceRoleKey string) *authsdk.AuthClient {
	t.Helper()

	b := authsdk.NewBuilder().
		APIURL("https://project.supabase.co").
		AnonKey("anon-key").
		HTTPClient(&http.Client{Transport: guardTransport{t: t}})
	if serviceRoleKey != "" {
		b = b.ServiceRoleKey(serviceRoleKey)
	}

	client, err := b.Build()
	require.NoError(t, err)
	return client
}

// newServerClient builds a client pointed at a test server URL.
func newServerClient(t *testing.T, baseURL, serviceRoleKey string) *authsdk.AuthClient {
	t.Helper()

	b := authsdk.NewBuilder().APIURL(baseURL).AnonKey("anon-key")
	if serviceRoleKey != "" {
		b = b.ServiceRoleKey(serviceRoleKey)
	}

	client, err := b.Build()
	require.NoError(t, err)
	return client
}
