package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWritableSource(t *testing.T) {
	icloud := Source{ID: "1", Title: "iCloud", Type: SourceCalDAV}
	otherDAV := Source{ID: "2", Title: "Fastmail", Type: SourceCalDAV}
	local := Source{ID: "3", Title: "On My Device", Type: SourceLocal}
	exchange := Source{ID: "4", Title: "Work", Type: SourceExchange}
	subscribed := Source{ID: "5", Title: "Holidays", Type: SourceSubscribed}
	birthdays := Source{ID: "6", Title: "Birthdays", Type: SourceBirthdays}

	tests := []struct {
		name    string
		sources []Source
		want    Source
		wantErr bool
	}{
		{
			name:    "branded cloud source wins over local",
			sources: []Source{local, exchange, icloud},
			want:    icloud,
		},
		{
			name:    "unbranded caldav does not count as cloud",
			sources: []Source{otherDAV, local},
			want:    local,
		},
		{
			name:    "local wins over other writable sources",
			sources: []Source{subscribed, exchange, local},
			want:    local,
		},
		{
			name:    "first non read-only source",
			sources: []Source{birthdays, subscribed, otherDAV, exchange},
			want:    otherDAV,
		},
		{
			name:    "only read-only sources",
			sources: []Source{birthdays, subscribed},
			wantErr: true,
		},
		{
			name:    "no sources",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWritableSource(tt.sources, "iCloud")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoWritableSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWritableSourceEmptyBrand(t *testing.T) {
	got, err := ResolveWritableSource([]Source{
		{ID: "a", Title: "iCloud", Type: SourceCalDAV},
		{ID: "b", Title: "On My Device", Type: SourceLocal},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestParseSourceType(t *testing.T) {
	typ, err := ParseSourceType(" CalDAV ")
	require.NoError(t, err)
	assert.Equal(t, SourceCalDAV, typ)

	_, err = ParseSourceType("fax")
	assert.Error(t, err)
}
