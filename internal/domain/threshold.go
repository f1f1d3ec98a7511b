package domain

// CrossesThreshold reports whether upvotes out of memberCount members
// meet the board's threshold percentage. The comparison is kept in
// integer form (upvotes*100 >= memberCount*pct) so there is no
// floating point rounding anywhere near the notification trigger.
//
// A board with no members never crosses: without the special case an
// empty board would notify on its first upvote.
func CrossesThreshold(upvotes, memberCount, thresholdPercent int) bool {
	if memberCount <= 0 {
		return false
	}
	return upvotes*100 >= memberCount*thresholdPercent
}
