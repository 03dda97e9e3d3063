// Package store defines persistence interfaces and their error taxonomy.
package store
