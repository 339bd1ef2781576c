// Package base provides embeddable model bases and a registry of models for
// schema creation.
//
// The bases cover the common primary key strategies (random UUID, time
// ordered UUIDv7 and auto incrementing integers), audit timestamps, soft
// deletion and unique slugs. Models embed the combination they need and
// register themselves so engine startup can create every table in one pass.
package base
