package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, "", ptr.Deref[string](nil))
	assert.Equal(t, "+123456789", ptr.Deref(ptr.New("+123456789")))
}
