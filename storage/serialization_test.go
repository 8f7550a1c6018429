// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"testing"

	"github.com/poiesic/schoolbridge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementRoundTrip(t *testing.T) {
	original := &core.Announcement{
		Id:          42,
		Title:       "Bake Sale Friday",
		Sender:      "PTA Board",
		SentAt:      "2025-06-17T09:00:00Z",
		Description: "Cookies and brownies in the cafeteria",
		Attachments: []core.Attachment{
			{Filename: "flyer.pdf", URL: "https://example.com/flyer.pdf"},
		},
	}

	data, err := MarshalAnnouncement(original)
	require.NoError(t, err)

	restored, err := UnmarshalAnnouncement(data)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestUnmarshalAnnouncement_Invalid(t *testing.T) {
	_, err := UnmarshalAnnouncement([]byte("not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
