// Package cleaner turns a joined messages table into the decoded table.
//
// The categories column holds separator-joined tokens of the form
// name-value, for example "related-1;request-0;offer-1". Cleaning:
//
//  1. derives the category names from the first non-null categories field
//     (each token minus its last two characters)
//  2. checks that every other non-null field has the same tokens in the same order
//  3. replaces the categories column with one integer column per category,
//     holding the last character of each token
//  4. drops rows whose filter column holds the out-of-domain value
//  5. drops exact duplicate rows, keeping the first occurrence
//
// Rows without a categories field keep null in every decoded column.
// The input table is never modified.
package cleaner
