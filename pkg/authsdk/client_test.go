package authsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		client, err := NewClient("https://project.supabase.co", "anon-key")
		require.NoError(t, err)
		require.Equal(t, "https://project.supabase.co", client.apiURL)
		require.Empty(t, client.serviceRoleKey)
		require.NotNil(t, client.httpClient)
		require.NotNil(t, client.rest)
		require.NotNil(t, client.logger)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("https://project.supabase.co/", "anon-key")
		require.NoError(t, err)
		require.Equal(t, "https://project.supabase.co/auth/v1/user", client.endpoint("user"))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := NewClient("", "anon-key")
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("empty anon key", func(t *testing.T) {
		_, err := NewClient("https://project.supabase.co", "")
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("relative url", func(t *testing.T) {
		_, err := NewClient("project.supabase.co", "anon-key")
		require.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("with service role key", func(t *testing.T) {
		client, err := NewBuilder().
			APIURL("https://project.supabase.co").
			AnonKey("anon-key").
			ServiceRoleKey("service-key").
			Build()
		require.NoError(t, err)
		require.Equal(t, "service-key", client.serviceRoleKey)
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := NewBuilder().AnonKey("anon-key").Build()
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("missing anon key", func(t *testing.T) {
		_, err := NewBuilder().APIURL("https://project.supabase.co").Build()
		require.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	email := EmailIdentifier("user@example.com")
	require.True(t, email.IsEmail())
	require.Equal(t, "user@example.com", email.Email())
	require.Empty(t, email.Phone())
	require.NoError(t, email.validate())

	phone := PhoneIdentifier("+61400000000")
	require.False(t, phone.IsEmail())
	require.Equal(t, "+61400000000", phone.Phone())
	require.NoError(t, phone.validate())

	var zero Identifier
	require.ErrorIs(t, zero.validate(), ErrInvalidParameters)
	require.ErrorIs(t, EmailIdentifier("").validate(), ErrInvalidParameters)
}
