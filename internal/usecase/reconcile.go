package usecase

import (
	"trazot/internal/domain/entity"
)

// mergeByID folds local items into an index seeded with remote items. A local
// item replaces the remote one only when strictly fresher, so equal freshness
// keeps the remote copy: the tie-break is "prefer remote", deliberately and
// order-independently. Output order is remote order followed by local-only
// items, which keeps repeated merges stable.
//
// Postcondition: every id present in either input appears exactly once.
func mergeByID[T any](remote, local []T, id func(T) string, fresher func(a, b T) bool) []T {
	index := make(map[string]T, len(remote)+len(local))
	order := make([]string, 0, len(remote)+len(local))

	for _, item := range remote {
		key := id(item)
		if _, seen := index[key]; !seen {
			order = append(order, key)
		}
		index[key] = item
	}

	for _, item := range local {
		key := id(item)
		current, seen := index[key]
		if !seen {
			index[key] = item
			order = append(order, key)
			continue
		}
		if fresher(item, current) {
			index[key] = item
		}
	}

	merged := make([]T, 0, len(order))
	for _, key := range order {
		merged = append(merged, index[key])
	}
	return merged
}

func mergeListings(remote, local []entity.Listing) []entity.Listing {
	return mergeByID(remote, local,
		func(l entity.Listing) string { return l.ID },
		func(a, b entity.Listing) bool { return a.StatusChangedAt.After(b.StatusChangedAt) })
}

// mergeUsers applies the credits-OR-joinedAt rule: a record wins if it has
// strictly more credits or a strictly later joinedAt, regardless of the other
// field. This is deliberate max-wins economics and can lose edits to
// non-credit fields on the stale side. The one-shot exhaustion-bonus flag is
// sticky across the merge regardless of which record wins.
func mergeUsers(remote, local []entity.User) []entity.User {
	merged := mergeByID(remote, local,
		func(u entity.User) string { return u.ID },
		func(a, b entity.User) bool {
			return a.Credits > b.Credits || a.JoinedAt.After(b.JoinedAt)
		})

	flagged := make(map[string]bool, len(remote)+len(local))
	for _, u := range remote {
		if u.HasReceivedExhaustionBonus {
			flagged[u.ID] = true
		}
	}
	for _, u := range local {
		if u.HasReceivedExhaustionBonus {
			flagged[u.ID] = true
		}
	}
	for i := range merged {
		if flagged[merged[i].ID] {
			merged[i].HasReceivedExhaustionBonus = true
		}
	}
	return merged
}

func mergeNews(remote, local []entity.NewsArticle) []entity.NewsArticle {
	return mergeByID(remote, local,
		func(a entity.NewsArticle) string { return a.ID },
		func(a, b entity.NewsArticle) bool { return a.PublishedAt.After(b.PublishedAt) })
}

func mergeMessages(remote, local []entity.InternalMessage) []entity.InternalMessage {
	return mergeByID(remote, local,
		func(m entity.InternalMessage) string { return m.ID },
		func(a, b entity.InternalMessage) bool { return a.Timestamp.After(b.Timestamp) })
}

func mergeDealers(remote, local []entity.Dealer) []entity.Dealer {
	return mergeByID(remote, local,
		func(d entity.Dealer) string { return d.ID },
		func(a, b entity.Dealer) bool { return a.CreatedAt.After(b.CreatedAt) })
}

func mergePromotions(remote, local []entity.ProjectPromotion) []entity.ProjectPromotion {
	return mergeByID(remote, local,
		func(p entity.ProjectPromotion) string { return p.ID },
		func(a, b entity.ProjectPromotion) bool { return a.CreatedAt.After(b.CreatedAt) })
}
