// Package scheduler allocates products to one hour delivery slots and orders
// the committed slots for presentation.
//
// A run walks the products in order: invalid products are dropped, the
// candidate days of each remaining product are computed from its lead time
// and weekdays, and the first free hour on the earliest candidate day is
// committed to the Store. Prioritize then lists green slots falling inside
// the green window first, followed by every other slot, each group in
// ascending time.
package scheduler
