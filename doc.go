// Copyright 2026 quiniela-ai. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package quiniela serves the weekly Quiniela football predictions stored in a Google Sheets spreadsheet.

quiniela-web renders a single page listing the current predictions (a 'logical' and a 'surprise' forecast
per match), the results history and a countdown to the weekly deadline. The spreadsheet is read with a
service account and the page is refreshed at most once per revalidation interval.

quiniela-web supports the following commands:

  - serve, to serve the predictions page
  - get, to download the current predictions (or the results history) as a TSV file
  - countdown, to display the time remaining until the next deadline
  - check-credentials, to check how the service account credentials will be interpreted
  - version, to display the current version
*/
package quiniela
