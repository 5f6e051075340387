// metrics_test.go
//
// Share, play, like and discuss Strudel live-coding patterns
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of strudel-share.
// strudel-share is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// strudel-share is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with strudel-share.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Mutations.WithLabelValues("like", OutcomeOK))
	Mutations.WithLabelValues("like", OutcomeOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Mutations.WithLabelValues("like", OutcomeOK)))

	before = testutil.ToFloat64(DemoFallbacks.WithLabelValues("patterns", ReasonEmpty))
	DemoFallbacks.WithLabelValues("patterns", ReasonEmpty).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(DemoFallbacks.WithLabelValues("patterns", ReasonEmpty)))
}
