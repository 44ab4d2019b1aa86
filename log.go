/* Copyright (C) 2019 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package metadbg

/* -------------------------------------------------------------------------- */

import (
	"os"

	logging "github.com/op/go-logging"
)

/* -------------------------------------------------------------------------- */

var log = logging.MustGetLogger("metadbg")

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// Backend is the default stderr output for the toolkit's logger.
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter carries the color-aware formatter.
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

func init() {
	logging.SetBackend(BackendFormatter)
}
