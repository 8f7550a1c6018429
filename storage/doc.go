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


// Package storage defines the announcement record-store abstraction.
//
// The retrieval engine consumes announcements through the
// AnnouncementRepository interface and never depends on a concrete backend.
// Two backends ship with schoolbridge:
//
//   - storage/airtable: the production record store, a REST client over the
//     school's Airtable base
//   - storage/badgerstore: a local BadgerDB mirror for seeding, offline
//     development, and tests
//
// All persisted state lives behind these backends; the engine itself holds
// no cache and fetches fresh on every invocation.
package storage
