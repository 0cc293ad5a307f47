package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/ltu-library/eventstore"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validTime := time.Now()
	validPayloadJSON := []byte(`{"BookID": 1000}`)
	validMetadataJSON := []byte(`{"MessageID": "m"}`)

	tests := []struct {
		name         string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{name: "invalid payload JSON", payloadJSON: []byte(`{"invalid": json}`), metadataJSON: validMetadataJSON, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "invalid metadata JSON", payloadJSON: validPayloadJSON, metadataJSON: []byte(`{"invalid": json}`), expectedErr: eventstore.ErrInvalidMetadataJSON},
		{name: "empty payload JSON", payloadJSON: []byte(``), metadataJSON: validMetadataJSON, expectedErr: eventstore.ErrInvalidPayloadJSON},
		{name: "empty metadata JSON", payloadJSON: validPayloadJSON, metadataJSON: []byte(``), expectedErr: eventstore.ErrInvalidMetadataJSON},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := eventstore.BuildStorableEvent("BookAdded", validTime, tc.payloadJSON, tc.metadataJSON)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_BuildStorableEvent_Success(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// act
	event, err := eventstore.BuildStorableEvent("BookAdded", occurredAt, []byte(`{"BookID": 1000}`), []byte(`{}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "BookAdded", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.JSONEq(t, `{"BookID": 1000}`, string(event.PayloadJSON))
}

func Test_BuildStorableEventWithEmptyMetadata_Success(t *testing.T) {
	// act
	event, err := eventstore.BuildStorableEventWithEmptyMetadata("BookRemoved", time.Now(), []byte(`{"BookID": 1000}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
}
