/*
Package cash is a minimal reservable currency.

Every account holds a free balance that can be spent and a reserved
balance that is locked by another extension (ie. as a bond for minting
a kitty) until it is unreserved again. Transfers may be required to leave
the payer with at least the configured minimal balance.
*/
package cash
