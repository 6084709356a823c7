package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type port struct {
	Name string
	MAC  string
	IPs  []string
}

type portAdapter struct{}

func (portAdapter) Name() string { return "port" }

func (portAdapter) ExtractKey(p port) string {
	return strings.ToLower(p.Name) + "\x00" + strings.ToLower(p.MAC)
}

func (portAdapter) CompareFields(stored, incoming port) []string {
	var out []string
	if stored.Name != incoming.Name {
		out = append(out, fmt.Sprintf("name: stored=%s incoming=%s", stored.Name, incoming.Name))
	}
	if stored.MAC != incoming.MAC {
		out = append(out, fmt.Sprintf("mac: stored=%s incoming=%s", stored.MAC, incoming.MAC))
	}
	return out
}

func (portAdapter) Merge(prev, next port) port {
	merged := prev
	if next.Name != "" {
		merged.Name = next.Name
	}
	seen := map[string]bool{}
	merged.IPs = nil
	for _, ip := range append(append([]string{}, prev.IPs...), next.IPs...) {
		if !seen[ip] {
			seen[ip] = true
			merged.IPs = append(merged.IPs, ip)
		}
	}
	return merged
}

func TestIndexIncoming_MergesDuplicates(t *testing.T) {
	items := []port{
		{Name: "eth0", MAC: "aa", IPs: []string{"10.0.0.1"}},
		{Name: "eth0", MAC: "AA", IPs: []string{"10.0.0.1", "fe80::1"}},
		{Name: "eth1", MAC: "bb"},
	}

	index, order := IndexIncoming[port](portAdapter{}, items)

	require.Len(t, index, 2)
	assert.Equal(t, []string{"eth0\x00aa", "eth1\x00bb"}, order)
	assert.ElementsMatch(t, []string{"10.0.0.1", "fe80::1"}, index["eth0\x00aa"].IPs)
}

func TestIndexStored_Conflict(t *testing.T) {
	_, err := IndexStored[port](portAdapter{}, []port{{Name: "eth0", MAC: "aa"}, {Name: "ETH0", MAC: "aa"}})

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "port", conflict.Collection)
	assert.Equal(t, "eth0\x00aa", conflict.Key)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		incoming []port
		stored   []port
		creates  int
		updates  int
		deletes  int
	}{
		{
			name:     "Empty",
			incoming: nil,
			stored:   nil,
		},
		{
			name:     "All New",
			incoming: []port{{Name: "eth0", MAC: "aa"}, {Name: "eth1", MAC: "bb"}},
			creates:  2,
		},
		{
			name:    "All Gone",
			stored:  []port{{Name: "eth0", MAC: "aa"}},
			deletes: 1,
		},
		{
			name:     "Case Change Is Update",
			incoming: []port{{Name: "ETH0", MAC: "aa"}},
			stored:   []port{{Name: "eth0", MAC: "aa"}},
			updates:  1,
		},
		{
			name:     "Mixed",
			incoming: []port{{Name: "eth0", MAC: "aa"}, {Name: "eth2", MAC: "cc"}},
			stored:   []port{{Name: "eth0", MAC: "aa"}, {Name: "eth1", MAC: "bb"}},
			creates:  1,
			deletes:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ReconcileItems[port](portAdapter{}, tt.incoming, tt.stored)
			require.NoError(t, err)

			assert.Equal(t, tt.creates, plan.Summary.Creates)
			assert.Equal(t, tt.updates, plan.Summary.Updates)
			assert.Equal(t, tt.deletes, plan.Summary.Deletes)
			assert.Len(t, plan.Actions, tt.creates+tt.updates+tt.deletes)

			seen := map[string]ActionType{}
			for _, a := range plan.Actions {
				_, dup := seen[a.Key]
				assert.False(t, dup, "key %q planned twice", a.Key)
				seen[a.Key] = a.Type
			}
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	incoming := []port{{Name: "eth0", MAC: "aa"}, {Name: "eth1", MAC: "bb"}}

	first, err := ReconcileItems[port](portAdapter{}, incoming, nil)
	require.NoError(t, err)

	// Persist the creates and reconcile again with the same input.
	var stored []port
	for _, a := range first.Actions {
		stored = append(stored, a.Item)
	}

	second, err := ReconcileItems[port](portAdapter{}, incoming, stored)
	require.NoError(t, err)
	assert.True(t, second.Empty())
	assert.Equal(t, 2, second.Summary.Unchanged)
}

func TestReconcile_ResultsSorted(t *testing.T) {
	plan, err := ReconcileItems[port](portAdapter{}, []port{{Name: "z"}, {Name: "a"}, {Name: "m"}}, nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(plan.Results))
	for _, r := range plan.Results {
		ids = append(ids, r.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}
