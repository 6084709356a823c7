package matching

import (
	"context"
	"fmt"
	"strings"

	"inventory-manager/feature/inventory/models"

	"go.uber.org/zap"
)

// Kind is the outcome of a match.
type Kind int

const (
	// Create means no item matched and a new one should be created.
	Create Kind = iota
	// Matched means an existing item was found.
	Matched
	// Ignore means the candidate carries nothing to match on.
	Ignore
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Ignore:
		return "ignore"
	default:
		return "create"
	}
}

// Decision is the result of MatchOrCreate.
type Decision struct {
	Kind   Kind
	ItemID uint
	// Rule names the criterion that matched.
	Rule string
}

// Criteria are the identifying attributes of a candidate item.
type Criteria struct {
	ItemType string
	// KnownID is the item an agent is already linked to, if any.
	KnownID uint
	UUID    string
	Serial  string
	Name    string
	MACs    []string
	IPs     []string
}

// Empty reports whether the criteria carry no identifying attribute.
func (c Criteria) Empty() bool {
	return c.KnownID == 0 && c.UUID == "" && c.Serial == "" && c.Name == "" && len(c.MACs) == 0
}

// Service decides which existing item a candidate describes.
type Service interface {
	MatchOrCreate(ctx context.Context, c Criteria) (Decision, error)
}

// Finder is the read side of the item storage the rule matcher queries.
type Finder interface {
	GetItem(ctx context.Context, itemType string, id uint) (*models.Item, error)
	FindItemByUUID(ctx context.Context, itemType, uuid string) (*models.Item, error)
	FindItemBySerial(ctx context.Context, itemType, serial string) (*models.Item, error)
	FindItemByName(ctx context.Context, itemType, name string) (*models.Item, error)
	FindItemByLookup(ctx context.Context, itemType string, category models.Category, values []string) (*models.Item, error)
}

type rule struct {
	name  string
	apply func(ctx context.Context, f Finder, c Criteria) (*models.Item, error)
}

// rules run in order; the first returning an item wins.
var rules = []rule{
	{name: "known", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		if c.KnownID == 0 {
			return nil, nil
		}
		return f.GetItem(ctx, c.ItemType, c.KnownID)
	}},
	{name: "uuid", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		if c.UUID == "" {
			return nil, nil
		}
		return f.FindItemByUUID(ctx, c.ItemType, c.UUID)
	}},
	{name: "serial", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		if c.Serial == "" {
			return nil, nil
		}
		return f.FindItemBySerial(ctx, c.ItemType, c.Serial)
	}},
	{name: "mac", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		return f.FindItemByLookup(ctx, c.ItemType, models.CategoryNetworkPort, c.MACs)
	}},
	{name: "ip", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		// Addresses move between hosts; they only confirm a name.
		if c.Name == "" || len(c.IPs) == 0 {
			return nil, nil
		}
		item, err := f.FindItemByLookup(ctx, c.ItemType, models.CategoryIPAddress, c.IPs)
		if err != nil || item == nil {
			return nil, err
		}
		if !strings.EqualFold(item.Name, c.Name) {
			return nil, nil
		}
		return item, nil
	}},
	{name: "name", apply: func(ctx context.Context, f Finder, c Criteria) (*models.Item, error) {
		// A bare name only identifies items reporting no stronger identifier.
		if c.Name == "" || c.UUID != "" || c.Serial != "" {
			return nil, nil
		}
		item, err := f.FindItemByName(ctx, c.ItemType, c.Name)
		if err != nil || item == nil {
			return item, err
		}
		if item.UUID != "" || item.Serial != "" {
			return nil, nil
		}
		return item, nil
	}},
}

// RuleMatcher matches candidates against stored items with a fixed rule chain:
// known link, UUID, serial, MAC, address confirmed by name, then name.
type RuleMatcher struct {
	finder Finder
	logger *zap.Logger
}

// NewRuleMatcher creates a matcher over a finder.
func NewRuleMatcher(finder Finder, logger *zap.Logger) *RuleMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleMatcher{finder: finder, logger: logger}
}

func (m *RuleMatcher) MatchOrCreate(ctx context.Context, c Criteria) (Decision, error) {
	if c.Empty() {
		return Decision{Kind: Ignore}, nil
	}

	for _, r := range rules {
		item, err := r.apply(ctx, m.finder, c)
		if err != nil {
			return Decision{}, fmt.Errorf("match rule %s: %w", r.name, err)
		}
		if item != nil {
			m.logger.Debug("Item matched",
				zap.String("item_type", c.ItemType),
				zap.Uint("item_id", item.ID),
				zap.String("rule", r.name),
			)
			return Decision{Kind: Matched, ItemID: item.ID, Rule: r.name}, nil
		}
	}
	return Decision{Kind: Create}, nil
}
