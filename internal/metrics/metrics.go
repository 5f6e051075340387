// metrics.go
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations counts coordinator actions by outcome
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "strudel_share",
		Name:      "mutations_total",
		Help:      "Mutation attempts by action and outcome.",
	}, []string{"action", "outcome"})

	// DemoFallbacks counts reads served from the demo dataset
	DemoFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "strudel_share",
		Name:      "demo_fallbacks_total",
		Help:      "Reads answered with demo data by collection and reason.",
	}, []string{"collection", "reason"})
)

// Mutation outcomes
const (
	OutcomeOK           = "ok"
	OutcomeAuthRequired = "auth_required"
	OutcomeDemo         = "demo"
	OutcomeInvalid      = "invalid"
	OutcomeInFlight     = "in_flight"
	OutcomeNotOwner     = "not_owner"
	OutcomeNotConfirmed = "not_confirmed"
	OutcomeWriteFailed  = "write_failed"
)

// Fallback reasons
const (
	ReasonUnconfigured = "unconfigured"
	ReasonError        = "error"
	ReasonEmpty        = "empty"
)
