// Package store persists scraped records into per-site collections.
//
// A collection is named after its site (nhl, espn, hockeyref) and holds
// one single-key document per record. Records are appended: there are no
// unique constraints, so scraping a page twice stores its records twice.
//
// Two engines implement Store:
//
//   - SQLiteStore keeps every collection as a table of JSON documents in
//     an embedded SQLite file (modernc.org/sqlite, CGO-free). This is the
//     default and needs no server.
//   - MongoStore writes to MongoDB collections through
//     go.mongodb.org/mongo-driver.
//
// Open selects the engine from the run configuration.
package store
