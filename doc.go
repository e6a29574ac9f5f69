// Package main is the entry point for the Manajemen UD API, a REST backend
// for managing business transactions (transaksi), users, organizational
// units (UD), and global application settings.
package main
