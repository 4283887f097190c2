package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDefaults(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	assert.Equal(t, 50, rec.Extraversion)
	assert.Equal(t, 50, rec.Agreeableness)
	assert.Empty(t, rec.CoachingStyle)
	assert.Empty(t, rec.CurrentFocus)
	assert.False(t, rec.Complete())
}

func TestSetEnumFields(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	require.NoError(t, rec.Set(FieldConscientiousness, "planner"))
	require.NoError(t, rec.Set(FieldRegulatoryFocus, "prevention"))
	require.NoError(t, rec.Set(FieldLocusOfControl, "internal"))
	require.NoError(t, rec.Set(FieldMindset, "growth"))

	assert.Equal(t, Planner, rec.Conscientiousness)
	assert.Equal(t, Prevention, rec.RegulatoryFocus)
	assert.Equal(t, Internal, rec.LocusOfControl)
	assert.Equal(t, Growth, rec.Mindset)
}

func TestSetRejectsInvalidEnumValue(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	err := rec.Set(FieldMindset, "agile")
	require.Error(t, err)
	assert.Empty(t, rec.Mindset, "rejected value must not be stored")
}

func TestSetRejectsUnknownField(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	assert.Error(t, rec.Set("favoriteColor", "blue"))
}

func TestSetClampsNumericFields(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	require.NoError(t, rec.Set(FieldExtraversion, 130))
	assert.Equal(t, 100, rec.Extraversion)

	require.NoError(t, rec.Set(FieldAgreeableness, -4))
	assert.Equal(t, 0, rec.Agreeableness)

	// JSON decoding hands numbers over as float64.
	require.NoError(t, rec.Set(FieldExtraversion, float64(72)))
	assert.Equal(t, 72, rec.Extraversion)
}

func TestSetTrimsCurrentFocus(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	require.NoError(t, rec.Set(FieldCurrentFocus, "  ship the launch  "))
	assert.Equal(t, "ship the launch", rec.CurrentFocus)
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	err := rec.ApplyDefaults(map[string]any{
		FieldExtraversion:  float64(30),
		FieldAgreeableness: float64(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, rec.Extraversion)
	assert.Equal(t, 80, rec.Agreeableness)
}

func TestApplyDefaultsRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	err := rec.ApplyDefaults(map[string]any{"extroversion": 10}) // typo
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	rec.Conscientiousness = Adapter
	rec.RegulatoryFocus = Promotion
	rec.LocusOfControl = External
	rec.Mindset = Fixed
	assert.False(t, rec.Complete(), "focus still missing")

	rec.CurrentFocus = "sleep more"
	assert.True(t, rec.Complete())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	rec := NewRecord()
	rec.CoachingStyle = "supportive"
	rec.Conscientiousness = Planner
	rec.RegulatoryFocus = Promotion
	rec.LocusOfControl = Internal
	rec.Mindset = Growth
	rec.Extraversion = 20
	rec.CurrentFocus = "public speaking"

	payload, err := rec.Encode()
	require.NoError(t, err)

	got, err := DecodeRecord(payload)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeRejectsInvalidEnum(t *testing.T) {
	t.Parallel()

	_, err := DecodeRecord(`{"mindset":"lateral"}`)
	assert.Error(t, err)
}

func TestDecodeClampsNumbers(t *testing.T) {
	t.Parallel()

	got, err := DecodeRecord(`{"extraversion":400,"agreeableness":-1,"currentFocus":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Extraversion)
	assert.Equal(t, 0, got.Agreeableness)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := DecodeRecord("not json")
	assert.Error(t, err)
}

func TestKnownField(t *testing.T) {
	t.Parallel()

	assert.True(t, KnownField(FieldCurrentFocus))
	assert.True(t, KnownField(FieldCoachingStyle))
	assert.False(t, KnownField("unknown"))
	assert.False(t, KnownField(""))
}
