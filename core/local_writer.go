package core

import (
	"fmt"
	"io"

	"github.com/smartystreets/sourcecheck/contracts"
)

// localWriter tags write failures as local so a copy error can be told
// apart from a fault on the reading (network) side.
type localWriter struct{ io.Writer }

func (this localWriter) Write(p []byte) (int, error) {
	count, err := this.Writer.Write(p)
	if err != nil {
		err = fmt.Errorf("%w: %v", contracts.ErrLocalIO, err)
	}
	return count, err
}
