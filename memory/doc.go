// Package memory provides the persisted memory document.
//
// Persistence model:
//   - One JSON file holds the whole document: the last lunch the user
//     mentioned and the ordered reminder list.
//   - Load and save replace wholesale; there is no merge and no versioning.
//   - Nothing is persisted implicitly. Callers decide when to save.
package memory
