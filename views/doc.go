// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views computes the read models each screen shows from the session
collections. Every function here is pure: it reads its arguments and returns
fresh values, never mutating the input slices.

# Views

  - PipelinePartition: needs-vote / already-voted split for the current user
  - ComputeDashboard: stage counts, unread notifications, vote and decision previews
  - SearchAndSortArchive, SearchAndSortPortfolio: substring filter + stable sort
  - ComputeMonthlyRollup: investments per month for the portfolio chart
  - ComputePortfolioStats: count, total and average check

# Search

Matching folds case with golang.org/x/text/cases, so "ÉTÉ" matches "été".
Name sorts use an English collator (golang.org/x/text/collate) rather than
byte order. Stage sorts are plain lexicographic.

# Sort Keys

Archive: date-newest, date-oldest, name-az, name-za, stage-az, stage-za.
Portfolio: date-newest, date-oldest, name-az, name-za, amount-high, amount-low.

Unknown keys fail with models.ErrInvalidEnumValue. All sorts are stable, so
ties keep collection order.

# Sealed Votes

Before quorum, a pipeline entry exposes who voted but not how. Call
Pipeline.Sealed before handing the view to a client.
*/
package views
