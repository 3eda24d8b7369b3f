// Package backbone parses the bipartite routing configuration that
// connects reference and target columns to named groups, and answers the
// routing queries the matching engine needs during index build and
// scoring.
//
// A GroupBlock bundles a set of headers with per-header weights
// (softmax-normalized) that participate together in scoring, plus a
// payload slot: a Pool on the reference side, a token list on the query
// side, or empty between queries. A Backbone owns every GroupBlock on both
// sides and the group-to-group links between them.
package backbone
