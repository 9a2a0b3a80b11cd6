package id

import "github.com/rs/xid"

// XID generates a short sortable id, used for business keys like case numbers
func XID() string {
	return xid.New().String()
}
