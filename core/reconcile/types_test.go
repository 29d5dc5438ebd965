package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdit_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		edit Edit[testItem]
		want string
	}{
		{"insert", Edit[testItem]{Op: OpInsert, Position: 2, Item: it("A")}, `{"op":"insert","position":2,"to_position":0,"item":{"Key":"A","Ver":0}}`},
		{"remove", Edit[testItem]{Op: OpRemove, Position: 1}, `{"op":"remove","position":1,"to_position":0}`},
		{"move to front", Edit[testItem]{Op: OpMove, Position: 3, ToPosition: 0}, `{"op":"move","position":3,"to_position":0}`},
		{"change", Edit[testItem]{Op: OpChange, Position: 0, Item: testItem{Key: "B", Ver: 1}}, `{"op":"change","position":0,"to_position":0,"item":{"Key":"B","Ver":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.edit)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back Edit[testItem]
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.edit, back)
		})
	}
}

func TestNotification_MoveToFrontKeepsDestination(t *testing.T) {
	data, err := json.Marshal(Notification{Op: OpMove, Pos: 2, To: 0, Size: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"move","position":2,"to_position":0,"size":3}`, string(data))
}
