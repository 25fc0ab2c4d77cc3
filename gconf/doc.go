/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Consensus constants of an extension are read from the genesis file, validated
and stored under the "_c:<package name>" key. Every node loads them from the
database when building the application, so all nodes run with the same
values for the whole life of the chain.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client. Application must be
terminated and configured correctly.
*/
package gconf
