package markup

const documentHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body {
    font-family: 'Helvetica Neue', Arial, sans-serif;
    line-height: 1.6;
    color: #F0F0F0;
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
}
h1 {
    color: #FFFFFF;
    font-size: 28px;
    margin-bottom: 10px;
    border-bottom: 2px solid #ddd;
    padding-bottom: 10px;
}
h2 {
    color: #E0E0E0;
    font-size: 22px;
    margin-top: 25px;
    margin-bottom: 10px;
}
h3 {
    color: #D0D0D0;
    font-size: 18px;
    margin-top: 20px;
    margin-bottom: 8px;
}
p {
    margin-bottom: 15px;
}
ul, ol {
    margin-bottom: 20px;
    padding-left: 25px;
}
li {
    margin-bottom: 8px;
}
.section {
    margin-bottom: 30px;
}
.chef-notes {
    background-color: #f9f9f9;
    border-left: 4px solid #ddd;
    padding: 15px;
    margin: 20px 0;
}
.substitutions {
    background-color: #f5f5f5;
    padding: 15px;
    margin: 20px 0;
    border-radius: 5px;
}
.wine-pairing {
    font-style: italic;
    margin: 20px 0;
}
</style>
</head>
<body>
`

const documentTail = `</body>
</html>
`
