package dashboard

import (
	"context"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/uiconfig"
)

// NavEntry is one sidebar link: a viewable table and its display label.
type NavEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// LabelSource is the read side of the label store.
type LabelSource interface {
	Labels() map[string]string
}

// SidebarBuilder composes the navigation from the live table list, the
// permission matrix and the label map. Rebuilt on every request so a
// permission flip shows up immediately.
type SidebarBuilder struct {
	introspector TableLister
	resolver     AccessResolver
	labels       LabelSource
}

func NewSidebarBuilder(introspector TableLister, resolver AccessResolver, labels LabelSource) *SidebarBuilder {
	return &SidebarBuilder{
		introspector: introspector,
		resolver:     resolver,
		labels:       labels,
	}
}

// Build returns the tables the role may view, in table-name order.
// ADMIN sees everything without consulting the matrix.
func (b *SidebarBuilder) Build(ctx context.Context, role internal.Role) ([]NavEntry, error) {
	tables, err := b.introspector.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	labels := b.labels.Labels()

	entries := make([]NavEntry, 0, len(tables))
	for _, name := range tables {
		if role != internal.RoleAdmin {
			access, err := b.resolver.ResolveAccess(ctx, role, name)
			if err != nil {
				return nil, err
			}
			if !access.CanView {
				continue
			}
		}
		entries = append(entries, NavEntry{
			Name:  name,
			Label: uiconfig.LabelFor(labels, name),
		})
	}

	return entries, nil
}
