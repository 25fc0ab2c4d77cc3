/*
Package kitties implements a ledger of collectible assets called kitties.

Each kitty carries a genome, a gender fixed at creation and an owner. An
owner can put a kitty up for sale, give it away or breed two of its
kitties into a new one. Creating a kitty locks a reservation fee of the
creator's currency, and every account can hold a bounded number of
kitties.

All state changes of a single operation are applied atomically: when any
step fails, nothing is written.
*/
package kitties
